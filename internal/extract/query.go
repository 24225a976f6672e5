package extract

import (
    "fmt"
    "strings"
    "time"
)

const dateLayout = "2006-01-02"

// Window is one calendar-month slice of the extraction range, dates
// inclusive.
type Window struct {
    Start time.Time
    End   time.Time
}

func (w Window) String() string {
    return w.Start.Format(dateLayout) + ".." + w.End.Format(dateLayout)
}

// roles mirror Jira's "Worked on" view: everything the user touched.
var roles = []string{"assignee", "reporter", "creator", "watcher", "worklogAuthor"}

// BuildJQL constructs the role-based activity query for one date window.
// When user is empty the query binds to the authenticated user via
// currentUser().
func BuildJQL(user string, start, end time.Time) string {
    who := "currentUser()"
    if strings.TrimSpace(user) != "" {
        who = fmt.Sprintf("%q", user)
    }
    parts := make([]string, 0, len(roles))
    for _, r := range roles {
        parts = append(parts, r+" = "+who)
    }
    return fmt.Sprintf("(%s) AND updated >= %q AND updated <= %q ORDER BY updated DESC",
        strings.Join(parts, " OR "), start.Format(dateLayout), end.Format(dateLayout))
}

// MonthWindows partitions [start, end] into calendar-month sub-windows,
// inclusive of partial first and last months.
func MonthWindows(start, end time.Time) []Window {
    var out []Window
    cur := start
    for !cur.After(end) {
        // last day of cur's month
        monthEnd := time.Date(cur.Year(), cur.Month()+1, 0, 0, 0, 0, 0, cur.Location())
        if monthEnd.After(end) { monthEnd = end }
        out = append(out, Window{Start: cur, End: monthEnd})
        cur = monthEnd.AddDate(0, 0, 1)
    }
    return out
}
