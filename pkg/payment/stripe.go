package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeConfig holds configuration for the Stripe payment provider.
type StripeConfig struct {
	SecretKey     string        `env:"STRIPE_SECRET_KEY,required"`
	WebhookSecret string        `env:"STRIPE_WEBHOOK_SECRET,required"`
	Timeout       time.Duration `env:"STRIPE_HTTP_TIMEOUT" envDefault:"30s"` // Timeout bounds every outbound Stripe call.
}

// StripeProvider implements Provider for Stripe.
type StripeProvider struct {
	api           *client.API
	webhookSecret string
}

// NewStripeProvider creates a new Stripe payment provider. The SDK client is
// scoped to this provider instance rather than configured through the
// package-level stripe.Key, so credentials stay injected, never ambient.
func NewStripeProvider(cfg StripeConfig) (*StripeProvider, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.WebhookSecret == "" {
		return nil, ErrMissingWebhookSecret
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, stripe.NewBackends(&http.Client{Timeout: timeout}))

	return &StripeProvider{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}, nil
}

// CreateCustomer registers a Stripe customer for the given email and returns
// the customer identifier.
func (p *StripeProvider) CreateCustomer(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx

	cust, err := p.api.Customers.New(params)
	if err != nil {
		return "", errors.Join(ErrProviderRequest, err)
	}

	return cust.ID, nil
}

// CreateCheckoutSession creates a hosted subscription checkout session for an
// existing Stripe customer.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer ID is required", ErrProviderRequest)
	}
	if req.PriceID == "" {
		return nil, fmt.Errorf("%w: price ID is required", ErrProviderRequest)
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(req.CustomerID),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errors.Join(ErrProviderRequest, err)
	}

	return &CheckoutSession{
		ID:  sess.ID,
		URL: sess.URL,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header against the signing
// secret and normalizes the event. Signature and payload failures are
// reported as a single ErrWebhookVerification class.
func (p *StripeProvider) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
		Tolerance:                webhook.DefaultTolerance,
	})
	if err != nil {
		return nil, errors.Join(ErrWebhookVerification, err)
	}

	ev := &WebhookEvent{
		Type:          mapStripeEventType(event.Type),
		ProviderEvent: string(event.Type),
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		// The session object carries the customer and subscription ids,
		// either as bare id strings or expanded objects.
		var sess struct {
			Customer     expandableID `json:"customer"`
			Subscription expandableID `json:"subscription"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, errors.Join(ErrWebhookVerification, err)
		}
		ev.CustomerID = string(sess.Customer)
		ev.SubscriptionID = string(sess.Subscription)

	case stripe.EventTypeCustomerSubscriptionUpdated, stripe.EventTypeCustomerSubscriptionDeleted:
		var sub struct {
			ID       string       `json:"id"`
			Customer expandableID `json:"customer"`
			Status   string       `json:"status"`
			Items    struct {
				Data []struct {
					Price struct {
						ID string `json:"id"`
					} `json:"price"`
				} `json:"data"`
			} `json:"items"`
		}
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, errors.Join(ErrWebhookVerification, err)
		}
		ev.SubscriptionID = sub.ID
		ev.CustomerID = string(sub.Customer)
		ev.Status = sub.Status
		if len(sub.Items.Data) > 0 {
			ev.PriceID = sub.Items.Data[0].Price.ID
		}
	}

	return ev, nil
}

// mapStripeEventType maps Stripe event types to normalized EventTypes.
// Unmapped events keep their original name so callers can log them.
func mapStripeEventType(t stripe.EventType) EventType {
	switch t {
	case stripe.EventTypeCheckoutSessionCompleted:
		return EventCheckoutCompleted
	case stripe.EventTypeCustomerSubscriptionUpdated:
		return EventSubscriptionUpdated
	case stripe.EventTypeCustomerSubscriptionDeleted:
		return EventSubscriptionCancelled
	case stripe.EventTypeInvoicePaymentFailed:
		return EventPaymentFailed
	default:
		return EventType(t)
	}
}

// expandableID decodes a Stripe reference that may arrive as a bare id
// string or as an expanded object with an "id" field.
type expandableID string

func (e *expandableID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*e = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = expandableID(s)
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*e = expandableID(obj.ID)
	return nil
}
