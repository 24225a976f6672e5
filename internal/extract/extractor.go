/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package extract

import (
    "context"
    "fmt"

    "github.com/rs/zerolog"

    "github.com/HamedShams/review-pulse/internal/adapters/jira"
    "github.com/HamedShams/review-pulse/internal/config"
)

type Tracker interface {
    Search(ctx context.Context, jql string, startAt, max int) (*jira.SearchPage, error)
    Comments(ctx context.Context, key string) ([]map[string]any, error)
    Changelog(ctx context.Context, key string) ([]map[string]any, error)
}

// WindowError reports a sub-window whose page fetches exhausted their
// retries. It aborts the whole run.
type WindowError struct {
    Window Window
    Err    error
}

func (e *WindowError) Error() string {
    return fmt.Sprintf("extract: window %s: %v", e.Window, e.Err)
}

func (e *WindowError) Unwrap() error { return e.Err }

// Result is the raw extraction output, persisted as-is before normalization.
// Comments are keyed by issue key; changelog histories are embedded under
// each raw issue's "changelog" key.
type Result struct {
    Issues   []map[string]any
    Comments map[string][]map[string]any
}

type Extractor struct {
    cfg  config.Config
    log  zerolog.Logger
    jira Tracker
}

func New(cfg config.Config, log zerolog.Logger, tracker Tracker) *Extractor {
    return &Extractor{cfg: cfg, log: log, jira: tracker}
}

// Run retrieves all issues, comments and changelogs for the configured date
// range, month by month, de-duplicated by issue key (first seen wins).
func (e *Extractor) Run(ctx context.Context) (*Result, error) {
    start, end, err := e.cfg.DateRange()
    if err != nil { return nil, err }

    pageSize := e.cfg.PageSize
    if pageSize <= 0 { pageSize = 50 }

    seen := map[string]struct{}{}
    var issues []map[string]any

    for _, w := range MonthWindows(start, end) {
        jql := BuildJQL(e.cfg.JiraUsername, w.Start, w.End)
        found := 0
        startAt := 0
        for {
            page, err := e.jira.Search(ctx, jql, startAt, pageSize)
            if err != nil { return nil, &WindowError{Window: w, Err: err} }
            for _, raw := range page.Issues {
                key, _ := raw["key"].(string)
                if key == "" { continue }
                found++
                // an issue updated at a window boundary shows up in both
                // windows; content is idempotent, keep the first copy
                if _, dup := seen[key]; dup { continue }
                seen[key] = struct{}{}
                issues = append(issues, raw)
            }
            if len(page.Issues) < pageSize { break }
            if page.Total > 0 && startAt+len(page.Issues) >= page.Total { break }
            startAt += len(page.Issues)
        }
        e.log.Info().Str("window", w.String()).Int("issues", found).Msg("extract: window fetched")
    }
    e.log.Info().Int("unique_issues", len(issues)).Msg("extract: search complete")

    comments := make(map[string][]map[string]any, len(issues))
    for i, raw := range issues {
        key, _ := raw["key"].(string)
        if (i+1)%20 == 0 {
            e.log.Info().Int("done", i+1).Int("total", len(issues)).Msg("extract: fetching comments")
        }
        cs, err := e.jira.Comments(ctx, key)
        if err != nil {
            e.log.Warn().Err(err).Str("key", key).Msg("extract: comments fetch failed, recording empty list")
            cs = nil
        }
        if cs == nil { cs = []map[string]any{} }
        comments[key] = cs

        if _, ok := raw["changelog"]; !ok {
            histories, err := e.jira.Changelog(ctx, key)
            if err != nil {
                e.log.Warn().Err(err).Str("key", key).Msg("extract: changelog fetch failed, recording empty list")
                histories = nil
            }
            if histories == nil { histories = []map[string]any{} }
            raw["changelog"] = map[string]any{"histories": histories}
        }
    }

    return &Result{Issues: issues, Comments: comments}, nil
}
