/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "strings"
    "time"

    "github.com/HamedShams/review-pulse/internal/config"
    "github.com/rs/zerolog"
)

// SearchPage is one page of search results. Issues are kept as raw JSON
// objects so they can be checkpointed verbatim before normalization.
type SearchPage struct {
    StartAt    int              `json:"startAt"`
    MaxResults int              `json:"maxResults"`
    Total      int              `json:"total"`
    Issues     []map[string]any `json:"issues"`
}

type Client struct {
    baseURL string
    email   string
    token   string
    http    *http.Client
    log     zerolog.Logger
}

func NewClient(cfg config.Config, log zerolog.Logger) *Client {
    return &Client{
        baseURL: strings.TrimRight(cfg.JiraBaseURL, "/"),
        email:   cfg.JiraEmail,
        token:   cfg.JiraAPIToken,
        http:    &http.Client{Timeout: cfg.HTTPTimeout},
        log:     log,
    }
}

func (c *Client) apiURL(path string, q url.Values) string {
    if !strings.HasPrefix(path, "/") { path = "/" + path }
    u := c.baseURL + path
    if len(q) > 0 { u = u + "?" + q.Encode() }
    return u
}

// doJSON issues a GET and decodes the response into out. Transient failures
// (network errors, 429, 5xx) are retried with exponential backoff; other
// statuses fail immediately.
func (c *Client) doJSON(ctx context.Context, u string, out any) error {
    if c.baseURL == "" { return errors.New("jira: empty baseURL") }
    var lastErr error
    for attempt := 0; attempt < 3; attempt++ {
        if attempt > 0 {
            time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
        }
        req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
        if err != nil { return err }
        req.Header.Set("Accept", "application/json")
        req.SetBasicAuth(c.email, c.token)
        resp, err := c.http.Do(req)
        if err != nil { lastErr = err; continue }
        if resp.StatusCode >= 300 {
            b, _ := io.ReadAll(resp.Body)
            resp.Body.Close()
            herr := fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
            if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
                lastErr = herr
                continue
            }
            return herr
        }
        err = json.NewDecoder(resp.Body).Decode(out)
        resp.Body.Close()
        return err
    }
    return lastErr
}

// Search fetches one page of issues matching the JQL query.
func (c *Client) Search(ctx context.Context, jql string, startAt, max int) (*SearchPage, error) {
    if jql == "" { return nil, errors.New("jira: empty jql") }
    q := url.Values{}
    q.Set("jql", jql)
    q.Set("startAt", fmt.Sprint(startAt))
    q.Set("maxResults", fmt.Sprint(max))
    q.Set("fields", "*all")
    u := c.apiURL("/rest/api/3/search/jql", q)
    var page SearchPage
    if err := c.doJSON(ctx, u, &page); err != nil { return nil, err }
    return &page, nil
}

// Comments fetches all comments for an issue in chronological order, paging
// by the response metadata.
func (c *Client) Comments(ctx context.Context, key string) ([]map[string]any, error) {
    if key == "" { return nil, errors.New("jira: empty issue key") }
    var all []map[string]any
    startAt := 0
    for {
        q := url.Values{}
        q.Set("startAt", fmt.Sprint(startAt))
        q.Set("maxResults", "100")
        u := c.apiURL("/rest/api/3/issue/"+url.PathEscape(key)+"/comment", q)
        var page struct {
            StartAt    int              `json:"startAt"`
            MaxResults int              `json:"maxResults"`
            Total      int              `json:"total"`
            Comments   []map[string]any `json:"comments"`
        }
        if err := c.doJSON(ctx, u, &page); err != nil { return nil, err }
        all = append(all, page.Comments...)
        if len(page.Comments) == 0 { break }
        next := page.StartAt + len(page.Comments)
        if next >= page.Total { break }
        startAt = next
    }
    return all, nil
}

// Changelog fetches all changelog histories for an issue in chronological
// order.
func (c *Client) Changelog(ctx context.Context, key string) ([]map[string]any, error) {
    if key == "" { return nil, errors.New("jira: empty issue key") }
    var all []map[string]any
    startAt := 0
    for {
        q := url.Values{}
        q.Set("startAt", fmt.Sprint(startAt))
        q.Set("maxResults", "100")
        u := c.apiURL("/rest/api/3/issue/"+url.PathEscape(key)+"/changelog", q)
        var page struct {
            StartAt    int              `json:"startAt"`
            MaxResults int              `json:"maxResults"`
            Total      int              `json:"total"`
            Values     []map[string]any `json:"values"`
        }
        if err := c.doJSON(ctx, u, &page); err != nil { return nil, err }
        all = append(all, page.Values...)
        if len(page.Values) == 0 { break }
        next := page.StartAt + len(page.Values)
        if next >= page.Total { break }
        startAt = next
    }
    return all, nil
}
