package main

import (
    "context"
    "errors"
    "fmt"

    "github.com/google/uuid"
    "github.com/rs/zerolog"

    "github.com/HamedShams/review-pulse/internal/adapters/groq"
    "github.com/HamedShams/review-pulse/internal/adapters/jira"
    "github.com/HamedShams/review-pulse/internal/config"
    "github.com/HamedShams/review-pulse/internal/domain"
    "github.com/HamedShams/review-pulse/internal/extract"
    "github.com/HamedShams/review-pulse/internal/normalize"
    "github.com/HamedShams/review-pulse/internal/store"
    "github.com/HamedShams/review-pulse/internal/summarize"
)

// runExtraction executes the extract stage end to end: clean output
// directories, fetch raw data, checkpoint it, normalize and group.
func runExtraction(cfg config.Config, log zerolog.Logger) ([]domain.Issue, []domain.FeatureGroup, error) {
    ctx := context.Background()
    st := store.New(cfg.OutputDir, log)
    if err := st.Reset(); err != nil { return nil, nil, err }

    ex := extract.New(cfg, log, jira.NewClient(cfg, log))
    res, err := ex.Run(ctx)
    if err != nil {
        var werr *extract.WindowError
        if errors.As(err, &werr) {
            log.Error().Str("window", werr.Window.String()).Msg("extraction aborted in window")
        }
        return nil, nil, err
    }
    if len(res.Issues) == 0 {
        log.Warn().Msg("no issues found matching the query")
    }
    if err := st.SaveRawIssues(res.Issues); err != nil { return nil, nil, err }
    if err := st.SaveRawComments(res.Comments); err != nil { return nil, nil, err }

    issues, dropped := normalize.New(log).Run(res.Issues, res.Comments)
    groups := normalize.GroupByFeature(issues)
    projects := normalize.GroupByProject(issues)

    if err := st.SaveIssues(issues); err != nil { return nil, nil, err }
    if err := st.SaveFeatures(groups); err != nil { return nil, nil, err }
    if err := st.SaveProjects(projects); err != nil { return nil, nil, err }

    end := cfg.EndDate
    if end == "" { end = "present" }
    ov := normalize.BuildOverview(uuid.NewString(), fmt.Sprintf("%s to %s", cfg.StartDate, end),
        len(issues), dropped, groups)
    if err := st.SaveOverview(ov); err != nil { return nil, nil, err }

    log.Info().
        Int("total_issues", ov.TotalIssues).
        Int("dropped", ov.DroppedIssues).
        Int("total_features", ov.TotalFeatures).
        Msg("extraction complete")
    return issues, groups, nil
}

// runSummarization loads previously extracted data and runs the LLM passes.
func runSummarization(cfg config.Config, log zerolog.Logger) error {
    st := store.New(cfg.OutputDir, log)
    issues, groups, err := st.LoadNormalized()
    if err != nil { return err }
    log.Info().Int("issues", len(issues)).Int("features", len(groups)).Msg("loaded extracted data")
    return summarizeStage(cfg, log, st, issues, groups)
}

func runSummarizationWith(cfg config.Config, log zerolog.Logger, issues []domain.Issue, groups []domain.FeatureGroup) error {
    st := store.New(cfg.OutputDir, log)
    return summarizeStage(cfg, log, st, issues, groups)
}

func summarizeStage(cfg config.Config, log zerolog.Logger, st *store.Store, issues []domain.Issue, groups []domain.FeatureGroup) error {
    llm := groq.NewClient(cfg, log)
    caller := summarize.NewCaller(llm, summarize.NewLimiter(cfg.CallDelay), log)
    return summarize.New(cfg, log, caller, st).Run(context.Background(), issues, groups)
}
