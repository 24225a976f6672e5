package normalize

import (
    "time"

    "github.com/HamedShams/review-pulse/internal/domain"
)

// OtherFeature is the catch-all group for issues with no component and no
// fix version.
const OtherFeature = "Other"

// FeatureFor derives the feature name for one issue: first component, else
// first fix version, else "Other". Deterministic given the issue's fields.
func FeatureFor(is domain.Issue) string {
    if len(is.Components) > 0 { return is.Components[0] }
    if len(is.FixVersions) > 0 { return is.FixVersions[0] }
    return OtherFeature
}

// GroupByFeature partitions issues by derived feature. Groups appear in
// first-occurrence order; issues keep input order; every issue lands in
// exactly one group.
func GroupByFeature(issues []domain.Issue) []domain.FeatureGroup {
    index := map[string]int{}
    var groups []domain.FeatureGroup
    for _, is := range issues {
        name := FeatureFor(is)
        i, ok := index[name]
        if !ok {
            i = len(groups)
            index[name] = i
            groups = append(groups, domain.FeatureGroup{
                FeatureName: name,
                Stats:       newStats(),
            })
        }
        groups[i].Issues = append(groups[i].Issues, is)
        addStats(&groups[i].Stats, is)
    }
    return groups
}

// GroupByProject is the legacy view grouping the same issues by tracker
// project.
func GroupByProject(issues []domain.Issue) []domain.ProjectGroup {
    index := map[string]int{}
    var groups []domain.ProjectGroup
    for _, is := range issues {
        key := is.ProjectKey
        if key == "" { key = "Unknown" }
        i, ok := index[key]
        if !ok {
            i = len(groups)
            index[key] = i
            groups = append(groups, domain.ProjectGroup{
                ProjectKey:  key,
                ProjectName: is.Project,
                Stats:       newStats(),
            })
        }
        groups[i].Issues = append(groups[i].Issues, is)
        addStats(&groups[i].Stats, is)
    }
    return groups
}

func newStats() domain.GroupStats {
    return domain.GroupStats{IssueTypes: map[string]int{}, Statuses: map[string]int{}}
}

func addStats(s *domain.GroupStats, is domain.Issue) {
    s.TotalIssues++
    typ := is.IssueType
    if typ == "" { typ = "Other" }
    s.IssueTypes[typ]++
    status := is.Status
    if status == "" { status = "Unknown" }
    s.Statuses[status]++
}

// BuildOverview assembles the derived summary.json view for one run.
func BuildOverview(runID, dateRange string, total, dropped int, groups []domain.FeatureGroup) domain.Overview {
    ov := domain.Overview{
        RunID:         runID,
        ExtractedAt:   time.Now().UTC().Format(time.RFC3339),
        DateRange:     dateRange,
        TotalIssues:   total,
        DroppedIssues: dropped,
        TotalFeatures: len(groups),
    }
    for _, g := range groups {
        ov.Features = append(ov.Features, domain.FeatureOverview{
            Name:       g.FeatureName,
            Issues:     g.Stats.TotalIssues,
            IssueTypes: g.Stats.IssueTypes,
            Statuses:   g.Stats.Statuses,
        })
    }
    return ov
}
