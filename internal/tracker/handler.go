package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/five82/issueboard/internal/backend"
	"github.com/five82/issueboard/internal/issue"
)

// Repository is what the handler serves.
type Repository interface {
	Fetch(ctx context.Context) ([]issue.Issue, error)
	Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error)
}

const maxPatchBytes = 64 << 10

// NewHandler exposes repo as the issue API:
//
//	GET   /api/issues       -> ListResponse
//	PATCH /api/issues/{id}  -> issue.Issue
func NewHandler(repo Repository, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{repo: repo, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+issuesPath, h.list)
	mux.HandleFunc("PATCH "+issuesPath+"/{id}", h.update)
	return mux
}

type handler struct {
	repo   Repository
	logger *slog.Logger
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.Fetch(r.Context())
	if err != nil {
		h.logger.Warn("fetch failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch issues")
		return
	}
	if items == nil {
		items = []issue.Issue{}
	}
	writeJSON(w, http.StatusOK, ListResponse{Items: items})
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch issue.Patch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPatchBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid patch: "+err.Error())
		return
	}
	if patch.IsEmpty() {
		writeError(w, http.StatusBadRequest, "patch sets no fields")
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.repo.Update(r.Context(), id, patch)
	switch {
	case err == nil:
		h.logger.Info("issue updated", "issue", id, "fields", patch.Fields())
		writeJSON(w, http.StatusOK, updated)
	case errors.Is(err, backend.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, backend.ErrUpdateRejected):
		h.logger.Warn("update rejected", "issue", id, "error", err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("update failed", "issue", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update issue")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
