/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package summarize

import (
    "context"
    "fmt"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/HamedShams/review-pulse/internal/config"
    "github.com/HamedShams/review-pulse/internal/domain"
    "github.com/HamedShams/review-pulse/internal/normalize"
    "github.com/HamedShams/review-pulse/internal/store"
)

const (
    quickMaxTokens = 512
    fullMaxTokens  = 4096
)

type Summarizer struct {
    cfg    config.Config
    log    zerolog.Logger
    caller *Caller
    store  *store.Store
}

func New(cfg config.Config, log zerolog.Logger, caller *Caller, st *store.Store) *Summarizer {
    return &Summarizer{cfg: cfg, log: log, caller: caller, store: st}
}

// Run executes the three summarization passes in order: per-issue, per-
// feature, final review. A failed issue or feature call is marked
// unavailable and the run continues; a failed final pass is fatal.
func (s *Summarizer) Run(ctx context.Context, issues []domain.Issue, groups []domain.FeatureGroup) error {
    if err := s.store.EnsureSummaries(); err != nil { return err }

    completed := make([]domain.Issue, 0, len(issues))
    for _, is := range issues {
        if s.cfg.Excluded(is.Status) { continue }
        completed = append(completed, is)
    }
    s.log.Info().
        Str("quick_model", s.cfg.ModelQuick).
        Str("full_model", s.cfg.ModelFull).
        Int("completed", len(completed)).
        Int("skipped", len(issues)-len(completed)).
        Msg("summarize: starting")

    issueSummaries, failedIssues := s.summarizeIssues(ctx, completed)
    if err := s.store.SaveIssueSummaries(issueSummaries); err != nil { return err }

    featureSummaries, failedFeatures := s.summarizeFeatures(ctx, groups, issueSummaries)
    if err := s.store.SaveFeatureSummaries(featureSummaries); err != nil { return err }

    review, err := s.finalReview(ctx, featureSummaries, len(completed))
    if err != nil { return err }
    path, err := s.store.SaveReview(s.renderReview(review))
    if err != nil { return err }

    s.log.Info().
        Int("issue_summaries", len(issueSummaries)).
        Int("issue_failures", failedIssues).
        Int("feature_summaries", len(featureSummaries)).
        Int("feature_failures", failedFeatures).
        Str("review", path).
        Msg("summarize: done")
    return nil
}

func (s *Summarizer) summarizeIssues(ctx context.Context, completed []domain.Issue) ([]domain.IssueSummary, int) {
    out := make([]domain.IssueSummary, 0, len(completed))
    failed := 0
    for i, is := range completed {
        s.log.Info().Str("key", is.Key).Int("n", i+1).Int("total", len(completed)).Msg("summarize: issue")
        sum := domain.IssueSummary{
            Key:             is.Key,
            Feature:         normalize.FeatureFor(is),
            Project:         is.Project,
            ProjectKey:      is.ProjectKey,
            OriginalSummary: is.Summary,
        }
        text, err := s.caller.Complete(ctx, s.cfg.ModelQuick, s.cfg.FallbackQuick,
            issueSystemPrompt, issuePrompt(is), quickMaxTokens)
        if err != nil {
            failed++
            s.log.Warn().Err(err).Str("key", is.Key).Msg("summarize: issue summary unavailable")
            sum.Summary = "[Summary failed] " + is.Summary
        } else {
            sum.Summary = text
        }
        out = append(out, sum)
    }
    return out, failed
}

func (s *Summarizer) summarizeFeatures(ctx context.Context, groups []domain.FeatureGroup, issueSummaries []domain.IssueSummary) ([]domain.FeatureSummary, int) {
    byFeature := map[string][]domain.IssueSummary{}
    for _, sum := range issueSummaries {
        byFeature[sum.Feature] = append(byFeature[sum.Feature], sum)
    }
    var out []domain.FeatureSummary
    failed := 0
    for _, g := range groups {
        sums := byFeature[g.FeatureName]
        if len(sums) == 0 { continue }
        s.log.Info().Str("feature", g.FeatureName).Int("issues", len(sums)).Msg("summarize: feature")
        fs := domain.FeatureSummary{Feature: g.FeatureName, IssueCount: len(sums)}
        text, err := s.caller.Complete(ctx, s.cfg.ModelFull, s.cfg.FallbackFull,
            featureSystemPrompt, featurePrompt(g.FeatureName, sums), fullMaxTokens)
        if err != nil {
            failed++
            s.log.Warn().Err(err).Str("feature", g.FeatureName).Msg("summarize: feature summary unavailable")
        } else {
            fs.Summary = text
        }
        out = append(out, fs)
    }
    return out, failed
}

func (s *Summarizer) finalReview(ctx context.Context, featureSummaries []domain.FeatureSummary, totalIssues int) (string, error) {
    return s.caller.Complete(ctx, s.cfg.ModelFull, s.cfg.FallbackFull,
        reviewSystemPrompt, reviewPrompt(featureSummaries, totalIssues), fullMaxTokens)
}

func (s *Summarizer) renderReview(body string) string {
    end := s.cfg.EndDate
    if end == "" { end = "present" }
    b := &strings.Builder{}
    fmt.Fprintf(b, "# Performance Review Summary\n\n")
    fmt.Fprintf(b, "*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))
    fmt.Fprintf(b, "*Period: %s to %s*\n\n", s.cfg.StartDate, end)
    fmt.Fprintf(b, "---\n\n")
    b.WriteString(body)
    return b.String()
}
