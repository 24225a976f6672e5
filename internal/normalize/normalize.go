/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package normalize

import (
    "errors"
    "strings"
    "time"

    "github.com/rs/zerolog"

    "github.com/HamedShams/review-pulse/internal/domain"
)

// ErrMissingKey marks a raw record without the identity field. Such records
// are dropped and counted, never emitted with an empty key.
var ErrMissingKey = errors.New("normalize: raw issue has no key")

type Normalizer struct {
    log zerolog.Logger
}

func New(log zerolog.Logger) *Normalizer { return &Normalizer{log: log} }

// Run maps every raw issue to the canonical record. Records without a key
// are dropped; the count of dropped records is returned alongside.
func (n *Normalizer) Run(rawIssues []map[string]any, rawComments map[string][]map[string]any) ([]domain.Issue, int) {
    out := make([]domain.Issue, 0, len(rawIssues))
    dropped := 0
    for _, raw := range rawIssues {
        key, _ := raw["key"].(string)
        is, err := n.Issue(raw, rawComments[key])
        if err != nil {
            dropped++
            n.log.Warn().Err(err).Msg("normalize: dropping record")
            continue
        }
        out = append(out, is)
    }
    if dropped > 0 {
        n.log.Warn().Int("dropped", dropped).Msg("normalize: records without key dropped")
    }
    return out, dropped
}

// Issue normalizes one raw issue plus its raw comments. Every optional field
// gets a default when absent; only a missing key is an error.
func (n *Normalizer) Issue(raw map[string]any, rawComments []map[string]any) (domain.Issue, error) {
    key, _ := raw["key"].(string)
    if strings.TrimSpace(key) == "" { return domain.Issue{}, ErrMissingKey }

    fields := asMap(raw["fields"])
    changelog := asMap(raw["changelog"])

    events, fixVersions := n.changelogEvents(changelog)

    comments := make([]domain.Comment, 0, len(rawComments))
    for _, c := range rawComments {
        comments = append(comments, domain.Comment{
            Author: displayName(c["author"], "Unknown"),
            Date:   n.canonDate(key, toStr(c["created"])),
            Text:   adfText(c["body"]),
        })
    }

    var labels []string
    for _, l := range asSlice(fields["labels"]) {
        if s, ok := l.(string); ok { labels = append(labels, s) }
    }
    var components []string
    for _, c := range asSlice(fields["components"]) {
        if name := toStr(asMap(c)["name"]); name != "" { components = append(components, name) }
    }

    return domain.Issue{
        Key:         key,
        Project:     nameOf(fields["project"], "name", "Unknown"),
        ProjectKey:  nameOf(fields["project"], "key", ""),
        IssueType:   nameOf(fields["issuetype"], "name", "Unknown"),
        Summary:     toStr(fields["summary"]),
        Description: adfText(fields["description"]),
        Status:      nameOf(fields["status"], "name", "Unknown"),
        Priority:    nameOf(fields["priority"], "name", ""),
        Resolution:  nameOf(fields["resolution"], "name", ""),
        Assignee:    displayName(fields["assignee"], "Unassigned"),
        Reporter:    displayName(fields["reporter"], ""),
        Created:     n.canonDate(key, toStr(fields["created"])),
        Updated:     n.canonDate(key, toStr(fields["updated"])),
        Labels:      emptyIfNil(labels),
        Components:  emptyIfNil(components),
        FixVersions: emptyIfNil(fixVersions),
        Comments:    comments,
        Changelog:   events,
    }, nil
}

// changelogEvents flattens changelog histories into ordered events and
// collects fix versions seen in "Fix Version" transitions, first appearance
// order, de-duplicated.
func (n *Normalizer) changelogEvents(changelog map[string]any) ([]domain.ChangeEvent, []string) {
    events := []domain.ChangeEvent{}
    fixVersions := []string{}
    seenFix := map[string]struct{}{}
    for _, h := range asSlice(changelog["histories"]) {
        hv := asMap(h)
        if hv == nil { continue }
        date := toStr(hv["created"])
        author := displayName(hv["author"], "Unknown")
        for _, it := range asSlice(hv["items"]) {
            itm := asMap(it)
            if itm == nil { continue }
            ev := domain.ChangeEvent{
                Date:   date,
                Author: author,
                Field:  toStr(itm["field"]),
                From:   toStr(itm["fromString"]),
                To:     toStr(itm["toString"]),
            }
            events = append(events, ev)
            if ev.Field == "Fix Version" && ev.To != "" {
                if _, dup := seenFix[ev.To]; !dup {
                    seenFix[ev.To] = struct{}{}
                    fixVersions = append(fixVersions, ev.To)
                }
            }
        }
    }
    return events, fixVersions
}

var dateLayouts = []string{
    time.RFC3339Nano,
    time.RFC3339,
    "2006-01-02T15:04:05.000-0700",
    "2006-01-02T15:04:05-0700",
}

// canonDate re-renders a tracker timestamp as RFC3339 UTC. Unparsable values
// are preserved verbatim and logged, never fatal.
func (n *Normalizer) canonDate(key, s string) string {
    if s == "" { return "" }
    for _, l := range dateLayouts {
        if t, err := time.Parse(l, s); err == nil {
            return t.UTC().Format(time.RFC3339)
        }
    }
    n.log.Warn().Str("key", key).Str("value", s).Msg("normalize: unparsable date kept raw")
    return s
}

// adfText flattens an Atlassian Document Format tree (or returns plain
// strings unchanged).
func adfText(v any) string {
    switch t := v.(type) {
    case nil:
        return ""
    case string:
        return t
    }
    var parts []string
    var walk func(node any)
    walk = func(node any) {
        switch nv := node.(type) {
        case map[string]any:
            if toStr(nv["type"]) == "text" {
                parts = append(parts, toStr(nv["text"]))
            }
            for _, child := range asSlice(nv["content"]) { walk(child) }
        case []any:
            for _, it := range nv { walk(it) }
        }
    }
    walk(v)
    return strings.Join(parts, " ")
}

// ---- untyped JSON helpers ----

func asMap(v any) map[string]any {
    m, _ := v.(map[string]any)
    return m
}

// asSlice accepts both decoded JSON ([]any) and live []map[string]any values.
func asSlice(v any) []any {
    switch t := v.(type) {
    case []any:
        return t
    case []map[string]any:
        out := make([]any, len(t))
        for i, m := range t { out[i] = m }
        return out
    }
    return nil
}

func toStr(v any) string {
    s, _ := v.(string)
    return s
}

func nameOf(v any, field, def string) string {
    m := asMap(v)
    if m == nil { return def }
    if s := toStr(m[field]); s != "" { return s }
    return def
}

func displayName(v any, def string) string {
    m := asMap(v)
    if m == nil { return def }
    if s := toStr(m["displayName"]); s != "" { return s }
    return def
}

func emptyIfNil(s []string) []string {
    if s == nil { return []string{} }
    return s
}
