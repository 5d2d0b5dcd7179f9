package tracker

import "github.com/five82/issueboard/internal/issue"

const issuesPath = "/api/issues"

// ListResponse mirrors GET /api/issues.
type ListResponse struct {
	Items []issue.Issue `json:"items"`
}

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
