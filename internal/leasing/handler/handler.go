// Package handler exposes the lease signing endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leasegate/internal/leasing/models"
	"leasegate/internal/platform/middleware"
	"leasegate/internal/transport/respond"
	"leasegate/pkg/domain"
	dErrors "leasegate/pkg/domain-errors"
)

// SigningService is the handler's view of the signing workflow.
type SigningService interface {
	GetLeaseForSigning(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID) (*models.SigningView, error)
	Sign(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID, req models.SignRequest) (*models.SignResult, error)
	PendingSignatures(ctx context.Context, caller domain.Caller) ([]*models.PendingLease, error)
	ResendInvitation(ctx context.Context, caller domain.Caller, leaseID domain.LeaseID) (*models.ResendResult, error)
}

// Handler handles lease signing endpoints.
type Handler struct {
	service SigningService
	logger  *slog.Logger
}

// NewHandler creates a signing Handler.
func NewHandler(service SigningService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the signing routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/leases/pending-signatures", h.handlePendingSignatures)
	r.Get("/leases/{leaseID}/signing", h.handleGetForSigning)
	r.Post("/leases/{leaseID}/sign", h.handleSign)
	r.Post("/leases/{leaseID}/signing/reminders", h.handleResendInvitation)
}

type signRequestBody struct {
	Signature     string `json:"signature"`
	AgreedToTerms bool   `json:"agreed_to_terms"`
}

func (h *Handler) handleGetForSigning(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	leaseID, err := domain.ParseLeaseID(chi.URLParam(r, "leaseID"))
	if err != nil {
		respond.WriteError(w, err)
		return
	}

	view, err := h.service.GetLeaseForSigning(ctx, caller, leaseID)
	if err != nil {
		h.logError(ctx, "failed to load signing view", err)
		respond.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, newSigningViewResponse(view), "")
}

func (h *Handler) handleSign(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	leaseID, err := domain.ParseLeaseID(chi.URLParam(r, "leaseID"))
	if err != nil {
		respond.WriteError(w, err)
		return
	}

	var body signRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.service.Sign(ctx, caller, leaseID, models.SignRequest{
		Signature:     body.Signature,
		AgreedToTerms: body.AgreedToTerms,
		IPAddress:     clientIP(r),
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		h.logError(ctx, "sign request failed", err)
		respond.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, newLeaseResponse(result.Lease), result.Message)
}

func (h *Handler) handlePendingSignatures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	pending, err := h.service.PendingSignatures(ctx, caller)
	if err != nil {
		h.logError(ctx, "failed to list pending signatures", err)
		respond.WriteError(w, err)
		return
	}

	out := make([]pendingLeaseResponse, 0, len(pending))
	for _, p := range pending {
		out = append(out, pendingLeaseResponse{
			Lease:    newLeaseResponse(p.Lease),
			Progress: newProgressResponse(p.Progress),
		})
	}
	respond.OK(w, http.StatusOK, out, "")
}

func (h *Handler) handleResendInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	caller, ok := middleware.GetCaller(ctx)
	if !ok {
		respond.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	leaseID, err := domain.ParseLeaseID(chi.URLParam(r, "leaseID"))
	if err != nil {
		respond.WriteError(w, err)
		return
	}

	result, err := h.service.ResendInvitation(ctx, caller, leaseID)
	if err != nil {
		h.logError(ctx, "failed to resend signing invitation", err)
		respond.WriteError(w, err)
		return
	}
	respond.OK(w, http.StatusOK, map[string]int{"reminded": result.Reminded}, result.Message)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", middleware.GetRequestID(ctx),
		"error", err,
	)
}

// clientIP strips the port from RemoteAddr. Deployments behind a proxy
// should rewrite RemoteAddr upstream.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
