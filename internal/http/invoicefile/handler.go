package invoicefile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
	"github.com/MrJamesThe3rd/billingfiles/internal/jobs"
)

// Dispatcher queues background jobs.
type Dispatcher interface {
	Submit(kind jobs.Kind, municipalityID string) (uuid.UUID, error)
}

type Handler struct {
	files      *invoicefile.Service
	dispatcher Dispatcher
}

func NewHandler(files *invoicefile.Service, dispatcher Dispatcher) *Handler {
	return &Handler{files: files, dispatcher: dispatcher}
}

// TriggerRoutes registers the endpoints that start background runs.
func (h *Handler) TriggerRoutes(r chi.Router) {
	r.Post("/create", h.trigger(jobs.KindCreateFiles))
	r.Post("/transfer", h.trigger(jobs.KindTransferFiles))
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/content", h.content)
}

func (h *Handler) trigger(kind jobs.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		municipalityID := chi.URLParam(r, "municipalityId")

		id, err := h.dispatcher.Submit(kind, municipalityID)
		if err != nil {
			if errors.Is(err, jobs.ErrQueueFull) || errors.Is(err, jobs.ErrClosed) {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}

			http.Error(w, err.Error(), http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)

		if err := json.NewEncoder(w).Encode(acceptedResponse{RequestID: id}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := invoicefile.ListFilter{MunicipalityID: chi.URLParam(r, "municipalityId")}

	for _, param := range r.URL.Query()["status"] {
		statuses, err := invoicefile.ParseStatuses(param)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter.Statuses = append(filter.Statuses, statuses...)
	}

	files, err := h.files.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(files)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// file loads the file named by the path, provided it belongs to the municipality of
// the path. It writes the error response itself.
func (h *Handler) file(w http.ResponseWriter, r *http.Request) (*invoicefile.File, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	f, err := h.files.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoicefile.ErrNotFound) {
			http.Error(w, "invoice file not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	if f.MunicipalityID != chi.URLParam(r, "municipalityId") {
		http.Error(w, "invoice file not found", http.StatusNotFound)
		return nil, false
	}

	return f, true
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	f, ok := h.file(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// content serves the stored bytes unchanged, labelled with their charset.
func (h *Handler) content(w http.ResponseWriter, r *http.Request) {
	f, ok := h.file(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", mime.FormatMediaType("text/plain", map[string]string{"charset": f.Encoding}))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))

	if _, err := w.Write(f.Content); err != nil {
		slog.Error("failed to write file content", "error", err)
	}
}
