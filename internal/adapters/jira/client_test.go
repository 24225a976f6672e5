package jira

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/HamedShams/review-pulse/internal/config"
)

func testClient(baseURL string) *Client {
    cfg := config.Config{
        JiraBaseURL:  baseURL,
        JiraEmail:    "dev@example.com",
        JiraAPIToken: "token",
        HTTPTimeout:  5 * time.Second,
    }
    return NewClient(cfg, zerolog.Nop())
}

func TestSearch_SendsQueryAndBasicAuth(t *testing.T) {
    var gotQuery map[string]string
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        user, pass, ok := r.BasicAuth()
        require.True(t, ok)
        assert.Equal(t, "dev@example.com", user)
        assert.Equal(t, "token", pass)
        assert.Equal(t, "/rest/api/3/search/jql", r.URL.Path)
        q := r.URL.Query()
        gotQuery = map[string]string{
            "jql":        q.Get("jql"),
            "startAt":    q.Get("startAt"),
            "maxResults": q.Get("maxResults"),
            "fields":     q.Get("fields"),
        }
        json.NewEncoder(w).Encode(SearchPage{
            StartAt: 10, MaxResults: 5, Total: 12,
            Issues: []map[string]any{{"key": "APP-11"}, {"key": "APP-12"}},
        })
    }))
    defer srv.Close()

    page, err := testClient(srv.URL).Search(context.Background(), "assignee = currentUser()", 10, 5)
    require.NoError(t, err)
    assert.Equal(t, map[string]string{
        "jql":        "assignee = currentUser()",
        "startAt":    "10",
        "maxResults": "5",
        "fields":     "*all",
    }, gotQuery)
    assert.Equal(t, 12, page.Total)
    require.Len(t, page.Issues, 2)
    assert.Equal(t, "APP-11", page.Issues[0]["key"])
}

func TestDoJSON_RetriesServerErrors(t *testing.T) {
    attempts := 0
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        attempts++
        if attempts < 3 {
            w.WriteHeader(http.StatusBadGateway)
            return
        }
        json.NewEncoder(w).Encode(SearchPage{Total: 0})
    }))
    defer srv.Close()

    _, err := testClient(srv.URL).Search(context.Background(), "assignee = currentUser()", 0, 50)
    require.NoError(t, err)
    assert.Equal(t, 3, attempts)
}

func TestDoJSON_ClientErrorFailsImmediately(t *testing.T) {
    attempts := 0
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        attempts++
        http.Error(w, `{"errorMessages":["bad jql"]}`, http.StatusBadRequest)
    }))
    defer srv.Close()

    _, err := testClient(srv.URL).Search(context.Background(), "bogus ===", 0, 50)
    require.Error(t, err)
    assert.Contains(t, err.Error(), "status=400")
    assert.Equal(t, 1, attempts)
}

func TestComments_PagesUntilTotal(t *testing.T) {
    type commentPage struct {
        StartAt    int              `json:"startAt"`
        MaxResults int              `json:"maxResults"`
        Total      int              `json:"total"`
        Comments   []map[string]any `json:"comments"`
    }
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        assert.Equal(t, "/rest/api/3/issue/APP-1/comment", r.URL.Path)
        switch r.URL.Query().Get("startAt") {
        case "0":
            json.NewEncoder(w).Encode(commentPage{StartAt: 0, Total: 3, Comments: []map[string]any{{"id": "1"}, {"id": "2"}}})
        default:
            json.NewEncoder(w).Encode(commentPage{StartAt: 2, Total: 3, Comments: []map[string]any{{"id": "3"}}})
        }
    }))
    defer srv.Close()

    comments, err := testClient(srv.URL).Comments(context.Background(), "APP-1")
    require.NoError(t, err)
    require.Len(t, comments, 3)
    assert.Equal(t, "3", comments[2]["id"])
}

func TestChangelog_EmptyIssueKeyRejected(t *testing.T) {
    _, err := testClient("http://localhost").Changelog(context.Background(), "")
    require.Error(t, err)
}
