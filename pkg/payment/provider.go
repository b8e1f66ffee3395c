package payment

import "context"

// Provider defines the minimal interface for payment provider integrations.
// The abstraction keeps provider SDK calls out of request handlers so the
// billing flows can be exercised with a test double.
//
// Implementations should use the official provider SDK and handle
// provider-specific quirks internally.
type Provider interface {
	// CreateCustomer registers a customer record with the provider and
	// returns the provider's customer identifier.
	CreateCustomer(ctx context.Context, email string) (string, error)

	// CreateCheckoutSession creates a hosted subscription checkout session.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)

	// ParseWebhook validates and parses incoming webhook data.
	// Must validate the signature to prevent webhook spoofing; any
	// verification or payload failure is reported as ErrWebhookVerification.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// CheckoutRequest contains data needed to create a checkout session.
type CheckoutRequest struct {
	CustomerID string // Provider's customer identifier
	PriceID    string // Provider's price/plan identifier
	SuccessURL string // Redirect after successful payment
	CancelURL  string // Redirect if customer cancels
}

// CheckoutSession represents a hosted checkout session.
type CheckoutSession struct {
	ID  string // Provider's session identifier
	URL string // Hosted checkout URL
}

// WebhookEvent represents a normalized webhook event from the payment provider.
type WebhookEvent struct {
	Type           EventType // Normalized event type
	ProviderEvent  string    // Original provider event name
	CustomerID     string    // Provider's customer ID
	SubscriptionID string    // Provider's subscription ID
	PriceID        string    // The plan/price the event refers to, when present
	Status         string    // Provider-reported subscription status, when present
}

// EventType represents the normalized billing event type.
// Provider implementations map their specific events to these types;
// unmapped provider events pass through with their original name.
type EventType string

const (
	EventCheckoutCompleted     EventType = "checkout_completed"
	EventSubscriptionUpdated   EventType = "subscription_updated"
	EventSubscriptionCancelled EventType = "subscription_cancelled"
	EventPaymentFailed         EventType = "payment_failed"
)
