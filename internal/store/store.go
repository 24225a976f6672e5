package store

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"

    "github.com/rs/zerolog"

    "github.com/HamedShams/review-pulse/internal/domain"
)

// ErrMissingInput is returned when summarization is requested but no
// normalized data exists on disk.
var ErrMissingInput = errors.New("store: no extracted data found, run extract first")

// Store owns the on-disk output layout. Each stage writes its own
// subdirectory, never concurrently:
//
//	<root>/raw         issues_raw.json, comments_raw.json
//	<root>/normalized  issues_normalized.json, features_grouped.json,
//	                   projects_grouped.json, summary.json
//	<root>/summaries   issue_summaries.json, feature_summaries.json,
//	                   REVIEW_SUMMARY.md
type Store struct {
    root string
    log  zerolog.Logger
}

func New(root string, log zerolog.Logger) *Store { return &Store{root: root, log: log} }

func (s *Store) rawDir() string        { return filepath.Join(s.root, "raw") }
func (s *Store) normalizedDir() string { return filepath.Join(s.root, "normalized") }
func (s *Store) summariesDir() string  { return filepath.Join(s.root, "summaries") }

// Reset clears all three stage directories and recreates raw+normalized so a
// re-run of the extract stage starts from a clean state.
func (s *Store) Reset() error {
    for _, dir := range []string{s.rawDir(), s.normalizedDir(), s.summariesDir()} {
        if err := os.RemoveAll(dir); err != nil {
            return fmt.Errorf("store: clear %s: %w", dir, err)
        }
    }
    for _, dir := range []string{s.rawDir(), s.normalizedDir()} {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return fmt.Errorf("store: create %s: %w", dir, err)
        }
    }
    s.log.Info().Str("root", s.root).Msg("store: output directories reset")
    return nil
}

// EnsureSummaries creates the summaries directory for the summarize stage.
func (s *Store) EnsureSummaries() error {
    return os.MkdirAll(s.summariesDir(), 0o755)
}

func (s *Store) saveJSON(path string, v any) error {
    b, err := json.MarshalIndent(v, "", "  ")
    if err != nil { return fmt.Errorf("store: marshal %s: %w", path, err) }
    if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
        return fmt.Errorf("store: write %s: %w", path, err)
    }
    s.log.Info().Str("path", path).Msg("store: saved")
    return nil
}

func (s *Store) loadJSON(path string, v any) error {
    b, err := os.ReadFile(path)
    if err != nil {
        if os.IsNotExist(err) { return ErrMissingInput }
        return fmt.Errorf("store: read %s: %w", path, err)
    }
    if err := json.Unmarshal(b, v); err != nil {
        return fmt.Errorf("store: decode %s: %w", path, err)
    }
    return nil
}

// ---- raw checkpoints ----

func (s *Store) SaveRawIssues(issues []map[string]any) error {
    return s.saveJSON(filepath.Join(s.rawDir(), "issues_raw.json"), issues)
}

func (s *Store) SaveRawComments(comments map[string][]map[string]any) error {
    return s.saveJSON(filepath.Join(s.rawDir(), "comments_raw.json"), comments)
}

// ---- normalized stage ----

func (s *Store) SaveIssues(issues []domain.Issue) error {
    return s.saveJSON(filepath.Join(s.normalizedDir(), "issues_normalized.json"), issues)
}

func (s *Store) SaveFeatures(groups []domain.FeatureGroup) error {
    return s.saveJSON(filepath.Join(s.normalizedDir(), "features_grouped.json"), groups)
}

func (s *Store) SaveProjects(groups []domain.ProjectGroup) error {
    return s.saveJSON(filepath.Join(s.normalizedDir(), "projects_grouped.json"), groups)
}

func (s *Store) SaveOverview(ov domain.Overview) error {
    return s.saveJSON(filepath.Join(s.normalizedDir(), "summary.json"), ov)
}

// LoadNormalized reads the normalized stage back for a summarize-only run.
func (s *Store) LoadNormalized() ([]domain.Issue, []domain.FeatureGroup, error) {
    var issues []domain.Issue
    if err := s.loadJSON(filepath.Join(s.normalizedDir(), "issues_normalized.json"), &issues); err != nil {
        return nil, nil, err
    }
    var groups []domain.FeatureGroup
    if err := s.loadJSON(filepath.Join(s.normalizedDir(), "features_grouped.json"), &groups); err != nil {
        return nil, nil, err
    }
    return issues, groups, nil
}

// ---- summaries stage ----

func (s *Store) SaveIssueSummaries(sums []domain.IssueSummary) error {
    return s.saveJSON(filepath.Join(s.summariesDir(), "issue_summaries.json"), sums)
}

func (s *Store) SaveFeatureSummaries(sums []domain.FeatureSummary) error {
    return s.saveJSON(filepath.Join(s.summariesDir(), "feature_summaries.json"), sums)
}

func (s *Store) SaveReview(markdown string) (string, error) {
    path := filepath.Join(s.summariesDir(), "REVIEW_SUMMARY.md")
    if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
        return "", fmt.Errorf("store: write %s: %w", path, err)
    }
    s.log.Info().Str("path", path).Msg("store: saved")
    return path, nil
}
