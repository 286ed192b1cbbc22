package activity

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leasegate/internal/platform/middleware"
	"leasegate/internal/transport/respond"
	dErrors "leasegate/pkg/domain-errors"
)

const defaultListLimit = 50

// Handler exposes the caller's own activity trail.
type Handler struct {
	store  Store
	logger *slog.Logger
}

// NewHandler creates an activity Handler.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts the activity routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/me/activity", h.handleListOwn)
}

type entryResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Details    string    `json:"details"`
	Device     string    `json:"device,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (h *Handler) handleListOwn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	entries, err := h.store.ListByUser(ctx, caller.UserID.String(), defaultListLimit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list activity",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		respond.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list activity"))
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryResponse{
			ID:         e.ID.String(),
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Details:    e.Details,
			Device:     e.Device,
			CreatedAt:  e.CreatedAt,
		})
	}
	respond.OK(w, http.StatusOK, out, "")
}
