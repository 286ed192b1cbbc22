package notification

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leasegate/internal/platform/middleware"
	"leasegate/internal/transport/respond"
	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
)

// Handler handles notification endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler creates a notification Handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the notification routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/notifications", h.handleList)
	r.Get("/notifications/unread-count", h.handleUnreadCount)
	r.Post("/notifications/{notificationID}/read", h.handleMarkRead)
}

type notificationResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	ActionURL string            `json:"action_url,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.service.List(ctx, caller, unreadOnly)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list notifications",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		respond.WriteError(w, err)
		return
	}

	out := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, notificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			Title:     n.Title,
			Message:   n.Message,
			ActionURL: n.ActionURL,
			Metadata:  n.Metadata,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	respond.OK(w, http.StatusOK, out, "")
}

func (h *Handler) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	count, err := h.service.UnreadCount(ctx, caller)
	if err != nil {
		respond.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, map[string]int{"unread": count}, "")
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	id, err := domain.ParseNotificationID(chi.URLParam(r, "notificationID"))
	if err != nil {
		respond.WriteError(w, err)
		return
	}

	if err := h.service.MarkRead(ctx, caller, id); err != nil {
		respond.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, nil, "Notification marked as read")
}
