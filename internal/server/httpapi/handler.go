// Package httpapi exposes the tribute store over its single HTTP endpoint:
// GET lists the wall, form-encoded POSTs append or remove a tribute.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmuchiri/tributewall/internal/logging"
	"github.com/dmuchiri/tributewall/internal/models"
	"github.com/dmuchiri/tributewall/internal/server/repositories/tributes"
)

type Handler struct {
	repo   tributes.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewHandler(repo tributes.Repository, logger logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger, now: time.Now}
}

// Register mounts the endpoint on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/tributes", h.handle)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "malformed form data"})
			return
		}
		if r.PostForm.Get("deleteId") != "" {
			h.remove(w, r)
			return
		}
		h.append(w, r)
	default:
		h.writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"status": "error", "message": "method not allowed"})
	}
}

// wireTribute is a tribute as serialized to clients.
type wireTribute struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
	Relation  string `json:"relation"`
	Location  string `json:"location"`
	UUID      string `json:"uuid"`
	Timestamp int64  `json:"timestamp"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "failed to list tributes", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "storage failure"})
		return
	}

	data := make([]wireTribute, 0, len(records))
	for _, rec := range records {
		data = append(data, wireTribute{
			ID:        rec.ID,
			Name:      rec.Name,
			Message:   rec.Message,
			Relation:  rec.Relation,
			Location:  rec.Location,
			UUID:      rec.OwnerUUID,
			Timestamp: rec.SubmittedAt,
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func (h *Handler) append(w http.ResponseWriter, r *http.Request) {
	form := r.PostForm

	owner := strings.TrimSpace(form.Get("uuid"))
	if owner == "" {
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "error", "message": "missing submitter identity"})
		return
	}

	// the same field rules the form applies client-side; the relation
	// label is stored as sent, the wall's readers normalize it
	draft := models.Draft{
		AuthorName: form.Get("name"),
		Message:    form.Get("message"),
	}
	if err := draft.Validate(); err != nil {
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "error", "message": err.Error()})
		return
	}

	ts := h.now().UnixMilli()
	if raw := form.Get("ts"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			ts = parsed
		}
	}

	rec := &tributes.Record{
		Name:        strings.TrimSpace(form.Get("name")),
		Relation:    strings.TrimSpace(form.Get("relation")),
		Message:     strings.TrimSpace(form.Get("message")),
		Location:    strings.TrimSpace(form.Get("location")),
		OwnerUUID:   owner,
		SubmittedAt: ts,
	}

	id, err := h.repo.Insert(r.Context(), rec)
	if err != nil {
		h.logger.Error(r.Context(), "failed to insert tribute", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "storage failure"})
		return
	}

	h.logger.Info(r.Context(), "tribute appended", "id", id, "location", rec.Location)
	h.writeJSON(w, http.StatusOK, map[string]any{"status": "success", "id": id})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PostForm.Get("deleteId"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "notfound"})
		return
	}

	outcome, err := h.repo.Delete(r.Context(), id, r.PostForm.Get("uuid"))
	if err != nil {
		h.logger.Error(r.Context(), "failed to delete tribute", "error", err, "id", id)
		h.writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "storage failure"})
		return
	}

	switch outcome {
	case tributes.Deleted:
		h.logger.Info(r.Context(), "tribute deleted", "id", id)
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
	case tributes.NotFound:
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "notfound"})
	case tributes.Forbidden:
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "error", "message": "only the original submitter can delete a tribute"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error(context.Background(), "failed to encode response", "error", err)
	}
}
