package summarize

import (
    "fmt"
    "sort"
    "strings"

    "github.com/HamedShams/review-pulse/internal/domain"
)

const issueSystemPrompt = "You are a technical writer creating concise issue summaries for a performance review. Focus on accomplishments and impact."

func issuePrompt(is domain.Issue) string {
    parts := []string{
        "Issue: " + is.Key,
        "Type: " + is.IssueType,
        "Summary: " + is.Summary,
        "Status: " + is.Status,
    }
    if is.Description != "" {
        parts = append(parts, "Description: "+truncate(is.Description, 500))
    }
    comments := is.Comments
    if len(comments) > 3 { comments = comments[len(comments)-3:] }
    for _, c := range comments {
        parts = append(parts, fmt.Sprintf("Comment by %s: %s", c.Author, truncate(c.Text, 200)))
    }
    return fmt.Sprintf(`Summarize this Jira issue in 2-3 sentences focusing on what was accomplished.
Write in third-person (not "I"). Be specific about technical work done.

%s

Summary:`, strings.Join(parts, "\n"))
}

const featureSystemPrompt = "You are helping prepare a performance review summary. Be professional, concise, and highlight impact."

// complexityScore favors summaries hinting at architectural or multi-month
// work when trimming a feature's issue list for the prompt.
func complexityScore(summary string) int {
    lower := strings.ToLower(summary)
    score := 0
    for _, w := range []string{"replace", "migrate", "refactor", "architect", "integration"} {
        if strings.Contains(lower, w) { score += 10; break }
    }
    for _, w := range []string{"multiple", "packages", "months", "complex", "major"} {
        if strings.Contains(lower, w) { score += 8; break }
    }
    for _, w := range []string{"revamp", "overhaul", "redesign"} {
        if strings.Contains(lower, w) { score += 8; break }
    }
    return score
}

func featurePrompt(feature string, sums []domain.IssueSummary) string {
    sorted := make([]domain.IssueSummary, len(sums))
    copy(sorted, sums)
    sort.SliceStable(sorted, func(i, j int) bool {
        return complexityScore(sorted[i].Summary) > complexityScore(sorted[j].Summary)
    })
    if len(sorted) > 25 { sorted = sorted[:25] }

    lines := make([]string, 0, len(sorted))
    for _, s := range sorted {
        lines = append(lines, "- "+truncate(s.Summary, 120))
    }
    return fmt.Sprintf(`Summarize work on %q feature/product at a high level (third-person perspective).

Work items (%d total):
%s

Write:
1. Overview (2-3 sentences, third-person: "The contributor..." or "Work on this feature...")
2. Key accomplishments (group related items together)
3. Impact statement

IMPORTANT: Group related tickets into single accomplishments. Don't list the same work multiple times.`,
        feature, len(sums), strings.Join(lines, "\n"))
}

const reviewSystemPrompt = "You are a technical writer creating an objective, well-formatted performance review summary. Write in third-person. Focus on technical depth, clear structure, and measurable impact. Use proper markdown formatting."

func reviewPrompt(featureSummaries []domain.FeatureSummary, totalIssues int) string {
    var sections []string
    for _, f := range featureSummaries {
        if f.Summary == "" { continue } // skip unavailable summaries
        sections = append(sections, fmt.Sprintf("## %s (%d issues)\n%s", f.Feature, f.IssueCount, f.Summary))
    }
    return fmt.Sprintf(`Create a comprehensive performance review summary from these feature contributions. Write in THIRD-PERSON (not "I" - use "The contributor" or passive voice).

Total: %d issues across features/products

%s

Write a well-formatted summary document with the following structure:

## Executive Summary
2-3 sentences providing a high-level overview of the contributor's work and overall impact.

## Key Themes
Bullet points identifying 3-5 recurring themes across all projects (e.g., "System reliability improvements", "Mobile app enhancements").

## Top 10 Accomplishments

List EXACTLY 10 major accomplishments, ordered from MOST IMPACTFUL to LEAST IMPACTFUL. For each accomplishment:
- Use a clear, bold heading describing the feature/project
- Write 3-5 sentences explaining:
  * What was done technically (specific technologies, integrations, or systems involved)
  * Why it was challenging or significant (complexity, scope, business criticality)
  * The measurable impact or outcome (user experience, performance, reliability)

Format each accomplishment as:
### 1. [Accomplishment Title]
[3-5 sentence paragraph]

## Technical Growth Areas
Bullet points highlighting skills demonstrated or developed.

## Impact Statement
A concluding paragraph summarizing the overall value delivered.

IMPORTANT RULES:
- Write in third-person throughout (never use "I" or "my")
- Group related work into single accomplishments (don't repeat similar items)
- Prioritize complex, multi-month, or architectural efforts over small/quick fixes
- Order accomplishments by business/technical impact (most impactful first)
- Each accomplishment MUST have 3-5 substantive sentences, not one-liners
- Use proper markdown formatting with headers and bold text`,
        totalIssues, strings.Join(sections, "\n\n"))
}

func truncate(s string, max int) string {
    r := []rune(s)
    if len(r) <= max { return s }
    return string(r[:max])
}
