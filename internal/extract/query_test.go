package extract

import (
    "strings"
    "testing"
    "time"
)

func day(s string) time.Time {
    t, err := time.Parse("2006-01-02", s)
    if err != nil { panic(err) }
    return t
}

func TestBuildJQL_RolePredicatesAndRange(t *testing.T) {
    jql := BuildJQL("", day("2025-01-15"), day("2025-01-31"))
    for _, role := range []string{"assignee", "reporter", "creator", "watcher", "worklogAuthor"} {
        if !strings.Contains(jql, role+" = currentUser()") {
            t.Fatalf("missing role predicate %q in %q", role, jql)
        }
    }
    if !strings.Contains(jql, `updated >= "2025-01-15" AND updated <= "2025-01-31"`) {
        t.Fatalf("missing date range in %q", jql)
    }
    if !strings.HasSuffix(jql, "ORDER BY updated DESC") {
        t.Fatalf("missing ordering in %q", jql)
    }
}

func TestBuildJQL_ExplicitUser(t *testing.T) {
    jql := BuildJQL("jdoe", day("2025-01-01"), day("2025-01-31"))
    if !strings.Contains(jql, `assignee = "jdoe"`) {
        t.Fatalf("expected quoted username predicate, got %q", jql)
    }
    if strings.Contains(jql, "currentUser()") {
        t.Fatalf("unexpected currentUser() in %q", jql)
    }
}

func TestMonthWindows_PartialFirstAndLastMonth(t *testing.T) {
    ws := MonthWindows(day("2025-01-15"), day("2025-03-10"))
    want := [][2]string{
        {"2025-01-15", "2025-01-31"},
        {"2025-02-01", "2025-02-28"},
        {"2025-03-01", "2025-03-10"},
    }
    if len(ws) != len(want) {
        t.Fatalf("expected %d windows, got %d: %v", len(want), len(ws), ws)
    }
    for i, w := range ws {
        if got := w.Start.Format("2006-01-02"); got != want[i][0] {
            t.Fatalf("window %d start = %s, want %s", i, got, want[i][0])
        }
        if got := w.End.Format("2006-01-02"); got != want[i][1] {
            t.Fatalf("window %d end = %s, want %s", i, got, want[i][1])
        }
    }
}

func TestMonthWindows_LeapFebruary(t *testing.T) {
    ws := MonthWindows(day("2024-02-10"), day("2024-03-01"))
    if len(ws) != 2 {
        t.Fatalf("expected 2 windows, got %v", ws)
    }
    if got := ws[0].End.Format("2006-01-02"); got != "2024-02-29" {
        t.Fatalf("leap february should end on the 29th, got %s", got)
    }
}

func TestMonthWindows_SingleDay(t *testing.T) {
    ws := MonthWindows(day("2025-06-05"), day("2025-06-05"))
    if len(ws) != 1 || !ws[0].Start.Equal(ws[0].End) {
        t.Fatalf("expected one single-day window, got %v", ws)
    }
}
