package billing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/chatgate/modules/user"
	"github.com/dmitrymomot/chatgate/pkg/logger"
	"github.com/dmitrymomot/chatgate/pkg/payment"
)

// Config holds billing configuration.
type Config struct {
	// FrontendURL is the base the post-checkout redirect targets derive from.
	FrontendURL string `env:"FRONTEND_URL,required"`
}

// Service owns the checkout flow and webhook-driven subscription state.
type Service struct {
	users      user.Store
	provider   payment.Provider
	successURL string
	cancelURL  string
	log        *slog.Logger
}

// NewService creates a new billing service.
// Panics on nil dependencies to fail fast during initialization.
func NewService(users user.Store, provider payment.Provider, cfg Config, log *slog.Logger) (*Service, error) {
	if users == nil {
		panic("billing: user store is required")
	}
	if provider == nil {
		panic("billing: payment provider is required")
	}
	if cfg.FrontendURL == "" {
		return nil, ErrMissingFrontendURL
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	base := strings.TrimSuffix(cfg.FrontendURL, "/")
	return &Service{
		users:      users,
		provider:   provider,
		successURL: base + "/success",
		cancelURL:  base + "/cancel",
		log:        log.With(logger.Component("billing")),
	}, nil
}

// CreateCheckoutSession ensures a provider customer exists for the email,
// creating the user row lazily on first contact, then opens a subscription
// checkout session for the given price and returns the session identifier.
//
// Two concurrent requests for the same unseen email race on row creation;
// the store's email uniqueness constraint decides the winner and the loser
// falls back to the surviving row instead of failing the client.
func (s *Service) CreateCheckoutSession(ctx context.Context, email, priceID string) (string, error) {
	u, err := s.users.ByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, user.ErrUserNotFound):
		u, err = s.enrollCustomer(ctx, email)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("look up user by email: %w", err)
	}

	sess, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		CustomerID: u.PaymentCustomerID,
		PriceID:    priceID,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
	})
	if err != nil {
		return "", errors.Join(ErrPaymentUnavailable, err)
	}

	return sess.ID, nil
}

// enrollCustomer registers the email with the payment provider and persists
// the new user row carrying the provider customer id.
func (s *Service) enrollCustomer(ctx context.Context, email string) (*user.User, error) {
	customerID, err := s.provider.CreateCustomer(ctx, email)
	if err != nil {
		return nil, errors.Join(ErrPaymentUnavailable, err)
	}

	u := &user.User{
		Email:             email,
		PaymentCustomerID: customerID,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			// Lost the creation race; the winner's row carries the
			// customer id every later webhook will reference.
			return s.users.ByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return u, nil
}

// HandleWebhook verifies and applies a payment provider event.
//
// Once the signature verifies, the event is acknowledged regardless of
// whether reconciliation found a matching user; the provider redelivers on
// non-2xx and an unknown customer would retry forever. The mismatch is
// logged at error level so it is observable, never silently swallowed.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return errors.Join(ErrInvalidSignature, err)
	}

	switch event.Type {
	case payment.EventCheckoutCompleted:
		// The completed-checkout event carries the subscription id where
		// later lifecycle events carry a price id; it is stored as the
		// active plan identifier either way.
		return s.reconcile(ctx, event, user.StatusActive, event.SubscriptionID)

	case payment.EventSubscriptionUpdated, payment.EventSubscriptionCancelled:
		// Last-write-wins: events may arrive out of order and the status
		// column simply tracks the provider's latest word.
		return s.reconcile(ctx, event, event.Status, event.PriceID)

	default:
		s.log.DebugContext(ctx, "ignoring webhook event", logger.Event(event.ProviderEvent))
		return nil
	}
}

func (s *Service) reconcile(ctx context.Context, event *payment.WebhookEvent, status, priceID string) error {
	err := s.users.UpdateSubscription(ctx, event.CustomerID, status, priceID)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "subscription state updated",
			logger.Event(event.ProviderEvent),
			logger.CustomerID(event.CustomerID),
			slog.String("status", status),
		)
		return nil
	case errors.Is(err, user.ErrUserNotFound):
		s.log.ErrorContext(ctx, "webhook references unknown customer",
			logger.Event(event.ProviderEvent),
			logger.CustomerID(event.CustomerID),
		)
		return nil
	default:
		return fmt.Errorf("reconcile webhook event: %w", err)
	}
}
