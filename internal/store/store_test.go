package store

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/HamedShams/review-pulse/internal/domain"
)

func TestLoadNormalized_MissingInput(t *testing.T) {
    st := New(t.TempDir(), zerolog.Nop())

    _, _, err := st.LoadNormalized()
    assert.ErrorIs(t, err, ErrMissingInput)
}

func TestSaveAndLoadNormalizedRoundTrip(t *testing.T) {
    st := New(t.TempDir(), zerolog.Nop())
    require.NoError(t, st.Reset())

    issues := []domain.Issue{{
        Key:         "APP-1",
        Project:     "Mobile App",
        ProjectKey:  "APP",
        IssueType:   "Story",
        Summary:     "Build checkout retry",
        Status:      "Done",
        Assignee:    "Jane Doe",
        Labels:      []string{"payments"},
        Components:  []string{"Checkout"},
        FixVersions: []string{},
        Comments:    []domain.Comment{{Author: "Bob", Date: "2025-02-06T08:00:00Z", Text: "looks good"}},
    }}
    groups := []domain.FeatureGroup{{
        FeatureName: "Checkout",
        Issues:      issues,
        Stats: domain.GroupStats{
            TotalIssues: 1,
            IssueTypes:  map[string]int{"Story": 1},
            Statuses:    map[string]int{"Done": 1},
        },
    }}
    require.NoError(t, st.SaveIssues(issues))
    require.NoError(t, st.SaveFeatures(groups))

    gotIssues, gotGroups, err := st.LoadNormalized()
    require.NoError(t, err)
    assert.Equal(t, issues, gotIssues)
    assert.Equal(t, groups, gotGroups)
}

func TestReset_ClearsPreviousRun(t *testing.T) {
    root := t.TempDir()
    st := New(root, zerolog.Nop())
    require.NoError(t, st.Reset())
    require.NoError(t, st.EnsureSummaries())

    stale := filepath.Join(root, "summaries", "REVIEW_SUMMARY.md")
    require.NoError(t, os.WriteFile(stale, []byte("old run"), 0o644))
    require.NoError(t, st.SaveRawIssues([]map[string]any{{"key": "APP-1"}}))

    require.NoError(t, st.Reset())

    _, err := os.Stat(stale)
    assert.True(t, os.IsNotExist(err))
    entries, err := os.ReadDir(filepath.Join(root, "raw"))
    require.NoError(t, err)
    assert.Empty(t, entries)
}

func TestSaveReview_ReturnsPath(t *testing.T) {
    root := t.TempDir()
    st := New(root, zerolog.Nop())
    require.NoError(t, st.EnsureSummaries())

    path, err := st.SaveReview("# Performance Review Summary\n")
    require.NoError(t, err)
    assert.Equal(t, filepath.Join(root, "summaries", "REVIEW_SUMMARY.md"), path)

    b, err := os.ReadFile(path)
    require.NoError(t, err)
    assert.Equal(t, "# Performance Review Summary\n", string(b))
}
