package config

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func validConfig() Config {
    return Config{
        JiraBaseURL:  "https://example.atlassian.net",
        JiraEmail:    "dev@example.com",
        JiraAPIToken: "token",
        StartDate:    "2025-01-01",
        EndDate:      "2025-03-31",
        GroqAPIKey:   "gsk-test",
    }
}

func TestLoad_Defaults(t *testing.T) {
    cfg := Load()

    assert.Equal(t, "llama-3.1-8b-instant", cfg.ModelQuick)
    assert.Equal(t, "llama-3.3-70b-versatile", cfg.ModelFull)
    assert.Equal(t, "groq/compound-mini", cfg.FallbackQuick)
    assert.Equal(t, "openai/gpt-oss-120b", cfg.FallbackFull)
    assert.Equal(t, "output", cfg.OutputDir)
    assert.Equal(t, 2*time.Second, cfg.CallDelay)
    assert.Equal(t, 50, cfg.PageSize)
    assert.Equal(t, []string{"Open", "Waiting for support", "To Do", "Backlog"}, cfg.ExcludedStatuses)
}

func TestLoad_StripsTrailingSlashFromBaseURL(t *testing.T) {
    t.Setenv("JIRA_BASE_URL", "https://example.atlassian.net/")
    cfg := Load()
    assert.Equal(t, "https://example.atlassian.net", cfg.JiraBaseURL)
}

func TestValidate_MissingJiraOption(t *testing.T) {
    cfg := validConfig()
    cfg.JiraAPIToken = ""

    err := cfg.Validate(true, false)
    var cfgErr *Error
    require.ErrorAs(t, err, &cfgErr)
    assert.Equal(t, "JIRA_API_TOKEN", cfgErr.Option)
}

func TestValidate_JiraNotRequiredForSummarizeOnly(t *testing.T) {
    cfg := Config{GroqAPIKey: "gsk-test"}
    assert.NoError(t, cfg.Validate(false, true))
}

func TestValidate_MissingLLMKey(t *testing.T) {
    cfg := validConfig()
    cfg.GroqAPIKey = ""

    err := cfg.Validate(true, true)
    var cfgErr *Error
    require.ErrorAs(t, err, &cfgErr)
    assert.Equal(t, "GROQ_API_KEY", cfgErr.Option)
}

func TestDateRange_Parses(t *testing.T) {
    cfg := validConfig()
    start, end, err := cfg.DateRange()
    require.NoError(t, err)
    assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
    assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestDateRange_EmptyEndMeansToday(t *testing.T) {
    cfg := validConfig()
    cfg.EndDate = ""
    _, end, err := cfg.DateRange()
    require.NoError(t, err)
    assert.False(t, end.Before(time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange_Errors(t *testing.T) {
    cases := []struct {
        name   string
        start  string
        end    string
        option string
    }{
        {"missing start", "", "2025-03-31", "START_DATE"},
        {"malformed start", "01/01/2025", "2025-03-31", "START_DATE"},
        {"malformed end", "2025-01-01", "March 31", "END_DATE"},
        {"start after end", "2025-04-01", "2025-03-31", "START_DATE"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            cfg := validConfig()
            cfg.StartDate = tc.start
            cfg.EndDate = tc.end
            _, _, err := cfg.DateRange()
            var cfgErr *Error
            require.ErrorAs(t, err, &cfgErr)
            assert.Equal(t, tc.option, cfgErr.Option)
        })
    }
}

func TestExcluded_CaseInsensitive(t *testing.T) {
    cfg := Config{ExcludedStatuses: []string{"Open", "To Do"}}

    assert.True(t, cfg.Excluded("open"))
    assert.True(t, cfg.Excluded("TO DO"))
    assert.False(t, cfg.Excluded("Done"))
}
