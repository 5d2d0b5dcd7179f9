package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/issueboard/internal/issue"
)

// Client talks to an issue service over HTTP. It satisfies the repository
// contract of the sync store.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAddr      = "127.0.0.1:7490"
	defaultUserAgent = "issueboard/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client for a host:port or base URL.
func NewClient(addr string) (*Client, error) {
	base, err := parseBaseURL(addr)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Fetch retrieves the full issue collection.
func (c *Client) Fetch(ctx context.Context) ([]issue.Issue, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload ListResponse
	if err := c.do(ctx, http.MethodGet, &url.URL{Path: issuesPath}, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Items, nil
}

// Update sends a partial update and returns the merged record.
func (c *Client) Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error) {
	if c == nil {
		return issue.Issue{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return issue.Issue{}, fmt.Errorf("issue id required")
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return issue.Issue{}, fmt.Errorf("encode patch: %w", err)
	}
	rel := &url.URL{Path: issuesPath + "/" + url.PathEscape(id)}
	var payload issue.Issue
	if err := c.do(ctx, http.MethodPatch, rel, bytes.NewReader(body), &payload); err != nil {
		return issue.Issue{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body io.Reader, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var apiErr ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return &StatusError{Path: rel.Path, Code: resp.StatusCode, Message: apiErr.Error}
		}
		return &StatusError{Path: rel.Path, Code: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx reply.
type StatusError struct {
	Path    string
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse backend address %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
