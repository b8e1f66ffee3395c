package billing

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/chatgate/pkg/logger"
	"github.com/dmitrymomot/chatgate/pkg/webutil"
)

// signatureHeader is the header Stripe signs webhook deliveries with.
const signatureHeader = "Stripe-Signature"

// maxWebhookBodyBytes caps webhook payload reads.
const maxWebhookBodyBytes = 1 << 20 // 1 MiB

// Handler exposes the billing service over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the HTTP handler for the billing endpoints.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if svc == nil {
		panic("billing: service is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, log: log.With(logger.Component("billing_handler"))}
}

type checkoutRequest struct {
	Email   string `json:"email"`
	PriceID string `json:"price_id"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
}

// CreateCheckoutSession handles POST /create-checkout-session.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		webutil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.PriceID == "" {
		webutil.RespondError(w, http.StatusBadRequest, "email and price_id are required")
		return
	}

	sessionID, err := h.svc.CreateCheckoutSession(r.Context(), req.Email, req.PriceID)
	switch {
	case err == nil:
		webutil.RespondJSON(w, http.StatusOK, checkoutResponse{SessionID: sessionID})
	case errors.Is(err, ErrPaymentUnavailable):
		webutil.RespondError(w, http.StatusBadGateway, "payment provider unavailable")
	default:
		h.log.ErrorContext(r.Context(), "checkout session creation failed", logger.Error(err))
		webutil.RespondError(w, http.StatusInternalServerError, "")
	}
}

// Webhook handles POST /webhook. The raw body is needed for signature
// verification, so it is read before any parsing.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		webutil.RespondError(w, http.StatusBadRequest, "unable to read request body")
		return
	}

	err = h.svc.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader))
	switch {
	case err == nil:
		webutil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, ErrInvalidSignature):
		// Potentially forged request; logged for security review.
		h.log.WarnContext(r.Context(), "webhook signature verification failed", logger.Error(err))
		webutil.RespondError(w, http.StatusBadRequest, "invalid signature")
	default:
		h.log.ErrorContext(r.Context(), "webhook processing failed", logger.Error(err))
		webutil.RespondError(w, http.StatusInternalServerError, "")
	}
}
