// Package tracker carries the issue repository contract over HTTP.
//
// Client implements Fetch and Update against a remote service; NewHandler
// serves any repository (normally backend.Simulated inside boardd) with the
// same two endpoints:
//
//	GET   /api/issues        {"items": [Issue, ...]}
//	PATCH /api/issues/{id}   body: Patch  ->  merged Issue
//
// Errors are JSON {"error": "..."} with 400 for malformed or invalid patches,
// 404 for unknown ids and 503 when the backend rejects a write. The client
// turns any 4xx/5xx into a *StatusError; the sync store treats every Update
// error the same way (roll back), so the exact code matters only for logs.
//
// Requests carry a five second timeout and the caller's context.
package tracker
