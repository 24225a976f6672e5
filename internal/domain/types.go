package domain

// Comment is one normalized issue comment, chronological order preserved.
type Comment struct {
    Author string `json:"author"`
    Date   string `json:"date"`
    Text   string `json:"text"`
}

// ChangeEvent is one normalized changelog transition.
type ChangeEvent struct {
    Date   string `json:"date"`
    Author string `json:"author"`
    Field  string `json:"field"`
    From   string `json:"from"`
    To     string `json:"to"`
}

// Issue is the canonical record produced by normalization. Key is unique
// across an extraction run.
type Issue struct {
    Key         string        `json:"key"`
    Project     string        `json:"project"`
    ProjectKey  string        `json:"projectKey"`
    IssueType   string        `json:"issueType"`
    Summary     string        `json:"summary"`
    Description string        `json:"description"`
    Status      string        `json:"status"`
    Priority    string        `json:"priority"`
    Resolution  string        `json:"resolution"`
    Assignee    string        `json:"assignee"`
    Reporter    string        `json:"reporter"`
    Created     string        `json:"created"`
    Updated     string        `json:"updated"`
    Labels      []string      `json:"labels"`
    Components  []string      `json:"components"`
    FixVersions []string      `json:"fixVersions"`
    Comments    []Comment     `json:"comments"`
    Changelog   []ChangeEvent `json:"changelog"`
}

type GroupStats struct {
    TotalIssues int            `json:"totalIssues"`
    IssueTypes  map[string]int `json:"issueTypes"`
    Statuses    map[string]int `json:"statuses"`
}

// FeatureGroup holds the issues assigned to one derived feature. Groups are
// ordered by first occurrence of the feature in the input; issues keep input
// order.
type FeatureGroup struct {
    FeatureName string     `json:"featureName"`
    Issues      []Issue    `json:"issues"`
    Stats       GroupStats `json:"stats"`
}

// ProjectGroup is the legacy view: the same issues grouped by tracker project.
type ProjectGroup struct {
    ProjectKey  string     `json:"projectKey"`
    ProjectName string     `json:"projectName"`
    Issues      []Issue    `json:"issues"`
    Stats       GroupStats `json:"stats"`
}

type IssueSummary struct {
    Key             string `json:"key"`
    Feature         string `json:"feature"`
    Project         string `json:"project"`
    ProjectKey      string `json:"projectKey"`
    OriginalSummary string `json:"originalSummary"`
    Summary         string `json:"summary"`
}

type FeatureSummary struct {
    Feature    string `json:"feature"`
    IssueCount int    `json:"issueCount"`
    // Summary is empty when the feature-level call failed; rendering skips
    // such entries.
    Summary string `json:"summary"`
}

type FeatureOverview struct {
    Name       string         `json:"name"`
    Issues     int            `json:"issues"`
    IssueTypes map[string]int `json:"issueTypes"`
    Statuses   map[string]int `json:"statuses"`
}

// Overview is the derived, non-authoritative summary.json view of one
// extraction run.
type Overview struct {
    RunID         string            `json:"runId"`
    ExtractedAt   string            `json:"extractedAt"`
    DateRange     string            `json:"dateRange"`
    TotalIssues   int               `json:"totalIssues"`
    DroppedIssues int               `json:"droppedIssues"`
    TotalFeatures int               `json:"totalFeatures"`
    Features      []FeatureOverview `json:"features"`
}
