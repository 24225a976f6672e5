/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "fmt"
    "os"

    "github.com/spf13/cobra"

    "github.com/HamedShams/review-pulse/internal/config"
    "github.com/HamedShams/review-pulse/internal/logger"
)

var Version = "dev"

func main() {
    rootCmd := &cobra.Command{
        Use:     "review-pulse",
        Short:   "Extract Jira activity and generate performance-review summaries",
        Version: Version,
        // bare invocation runs the full pipeline
        RunE: func(cmd *cobra.Command, args []string) error { return runAll() },
    }
    rootCmd.AddCommand(
        &cobra.Command{
            Use:   "extract",
            Short: "Fetch, normalize and group issues (clears previous output)",
            Args:  cobra.NoArgs,
            RunE:  func(cmd *cobra.Command, args []string) error { return runExtractCmd() },
        },
        &cobra.Command{
            Use:   "summarize",
            Short: "Generate LLM summaries from previously extracted data",
            Args:  cobra.NoArgs,
            RunE:  func(cmd *cobra.Command, args []string) error { return runSummarizeCmd() },
        },
        &cobra.Command{
            Use:   "all",
            Short: "Extract then summarize",
            Args:  cobra.NoArgs,
            RunE:  func(cmd *cobra.Command, args []string) error { return runAll() },
        },
    )
    rootCmd.SilenceUsage = true
    rootCmd.SilenceErrors = true

    if err := rootCmd.Execute(); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

func runExtractCmd() error {
    cfg := config.Load()
    log := logger.New(cfg)
    if err := cfg.Validate(true, false); err != nil { return err }
    _, _, err := runExtraction(cfg, log)
    if err == nil {
        log.Info().Msg("run `review-pulse summarize` to generate LLM summaries")
    }
    return err
}

func runSummarizeCmd() error {
    cfg := config.Load()
    log := logger.New(cfg)
    if err := cfg.Validate(false, true); err != nil { return err }
    return runSummarization(cfg, log)
}

func runAll() error {
    cfg := config.Load()
    log := logger.New(cfg)
    if err := cfg.Validate(true, true); err != nil { return err }
    issues, groups, err := runExtraction(cfg, log)
    if err != nil { return err }
    return runSummarizationWith(cfg, log, issues, groups)
}
