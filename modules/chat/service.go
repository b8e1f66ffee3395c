package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/chatgate/modules/user"
	"github.com/dmitrymomot/chatgate/pkg/logger"
)

// Completer generates a reply for a single user message. Satisfied by the
// OpenAI client; substituted with a test double in tests.
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// Service gates chat completion behind subscription state.
type Service struct {
	users     user.Store
	completer Completer
	log       *slog.Logger
}

// NewService creates a new chat service.
// Panics on nil dependencies to fail fast during initialization.
func NewService(users user.Store, completer Completer, log *slog.Logger) *Service {
	if users == nil {
		panic("chat: user store is required")
	}
	if completer == nil {
		panic("chat: completer is required")
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Service{
		users:     users,
		completer: completer,
		log:       log.With(logger.Component("chat")),
	}
}

// Send forwards the message to the chat collaborator for the given user and
// returns the reply text unmodified. The collaborator is never invoked for a
// user without an active subscription: an absent user or any status other
// than "active" yields ErrSubscriptionRequired before the outbound call.
func (s *Service) Send(ctx context.Context, userID int64, message string) (string, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrSubscriptionRequired
		}
		return "", fmt.Errorf("look up user %d: %w", userID, err)
	}

	if !u.HasActiveSubscription() {
		return "", ErrSubscriptionRequired
	}

	reply, err := s.completer.Complete(ctx, message)
	if err != nil {
		// No retry: the upstream may have billed the attempt already.
		s.log.ErrorContext(ctx, "chat completion failed", logger.UserID(userID), logger.Error(err))
		return "", errors.Join(ErrChatUnavailable, err)
	}

	return reply, nil
}
