/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
    "fmt"
    "os"
    "strconv"
    "strings"
    "time"
)

type Config struct {
    AppEnv string

    JiraBaseURL  string
    JiraEmail    string
    JiraAPIToken string
    JiraUsername string

    StartDate string
    EndDate   string // empty means today

    GroqAPIKey    string
    ModelQuick    string
    ModelFull     string
    FallbackQuick string
    FallbackFull  string

    OutputDir string

    CallDelay   time.Duration
    HTTPTimeout time.Duration
    PageSize    int

    // Statuses excluded from summarization (incomplete work).
    ExcludedStatuses []string
}

// Error reports bad or missing configuration. It is fatal at startup.
type Error struct {
    Option string
    Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("config: %s: %s", e.Option, e.Reason) }

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func atoi(key string, def int) int {
    v := os.Getenv(key)
    if v == "" { return def }
    i, err := strconv.Atoi(v)
    if err != nil { return def }
    return i
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func parseStrings(csv string) []string {
    if csv == "" { return nil }
    parts := strings.Split(csv, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p == "" { continue }
        out = append(out, p)
    }
    return out
}

func Load() Config {
    return Config{
        AppEnv: getenv("APP_ENV", "dev"),

        JiraBaseURL:  strings.TrimRight(getenv("JIRA_BASE_URL", ""), "/"),
        JiraEmail:    getenv("JIRA_EMAIL", ""),
        JiraAPIToken: getenv("JIRA_API_TOKEN", ""),
        JiraUsername: getenv("JIRA_USERNAME", ""),

        StartDate: getenv("START_DATE", ""),
        EndDate:   getenv("END_DATE", ""),

        GroqAPIKey:    getenv("GROQ_API_KEY", ""),
        ModelQuick:    getenv("GROQ_MODEL_QUICK", "llama-3.1-8b-instant"),
        ModelFull:     getenv("GROQ_MODEL_FULL", "llama-3.3-70b-versatile"),
        FallbackQuick: getenv("GROQ_FALLBACK_QUICK", "groq/compound-mini"),
        FallbackFull:  getenv("GROQ_FALLBACK_FULL", "openai/gpt-oss-120b"),

        OutputDir: getenv("OUTPUT_DIR", "output"),

        CallDelay:   dur("LLM_CALL_DELAY", 2*time.Second),
        HTTPTimeout: dur("HTTP_TIMEOUT", 30*time.Second),
        PageSize:    atoi("JIRA_PAGE_SIZE", 50),

        ExcludedStatuses: parseStrings(getenv("EXCLUDED_STATUSES", "Open,Waiting for support,To Do,Backlog")),
    }
}

const dateLayout = "2006-01-02"

// DateRange parses the configured extraction range. An empty end date means
// today.
func (c Config) DateRange() (time.Time, time.Time, error) {
    if strings.TrimSpace(c.StartDate) == "" {
        return time.Time{}, time.Time{}, &Error{Option: "START_DATE", Reason: "missing"}
    }
    start, err := time.Parse(dateLayout, c.StartDate)
    if err != nil {
        return time.Time{}, time.Time{}, &Error{Option: "START_DATE", Reason: "not a YYYY-MM-DD date: " + c.StartDate}
    }
    end := time.Now().UTC().Truncate(24 * time.Hour)
    if strings.TrimSpace(c.EndDate) != "" {
        end, err = time.Parse(dateLayout, c.EndDate)
        if err != nil {
            return time.Time{}, time.Time{}, &Error{Option: "END_DATE", Reason: "not a YYYY-MM-DD date: " + c.EndDate}
        }
    }
    if start.After(end) {
        return time.Time{}, time.Time{}, &Error{Option: "START_DATE", Reason: "later than end date"}
    }
    return start, end, nil
}

// Validate checks the options required for the requested stages: the tracker
// credentials and date range when extraction will run, the LLM key when
// summarization will run.
func (c Config) Validate(needJira, needLLM bool) error {
    if needJira {
        required := []struct{ opt, val string }{
            {"JIRA_BASE_URL", c.JiraBaseURL},
            {"JIRA_EMAIL", c.JiraEmail},
            {"JIRA_API_TOKEN", c.JiraAPIToken},
        }
        for _, r := range required {
            if strings.TrimSpace(r.val) == "" {
                return &Error{Option: r.opt, Reason: "missing"}
            }
        }
        if _, _, err := c.DateRange(); err != nil { return err }
    }
    if needLLM && strings.TrimSpace(c.GroqAPIKey) == "" {
        return &Error{Option: "GROQ_API_KEY", Reason: "missing"}
    }
    return nil
}

// Excluded reports whether a status belongs to the configured excluded set.
func (c Config) Excluded(status string) bool {
    for _, s := range c.ExcludedStatuses {
        if strings.EqualFold(s, status) { return true }
    }
    return false
}
