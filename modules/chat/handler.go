package chat

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/chatgate/pkg/logger"
	"github.com/dmitrymomot/chatgate/pkg/webutil"
)

// Handler exposes the chat service over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the HTTP handler for the chat endpoint.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if svc == nil {
		panic("chat: service is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{svc: svc, log: log.With(logger.Component("chat_handler"))}
}

type sendRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

type sendResponse struct {
	Reply string `json:"reply"`
}

// Send handles POST /chat.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := webutil.DecodeJSON(w, r, &req); err != nil {
		webutil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID <= 0 || req.Message == "" {
		webutil.RespondError(w, http.StatusBadRequest, "user_id and message are required")
		return
	}

	reply, err := h.svc.Send(r.Context(), req.UserID, req.Message)
	switch {
	case err == nil:
		webutil.RespondJSON(w, http.StatusOK, sendResponse{Reply: reply})
	case errors.Is(err, ErrSubscriptionRequired):
		webutil.RespondError(w, http.StatusForbidden, "active subscription required")
	case errors.Is(err, ErrChatUnavailable):
		webutil.RespondError(w, http.StatusBadGateway, "chat completion unavailable")
	default:
		h.log.ErrorContext(r.Context(), "chat request failed", logger.UserID(req.UserID), logger.Error(err))
		webutil.RespondError(w, http.StatusInternalServerError, "")
	}
}
