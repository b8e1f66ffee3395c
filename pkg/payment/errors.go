package payment

import "errors"

var (
	// ErrMissingAPIKey indicates the provider was constructed without a secret key.
	ErrMissingAPIKey = errors.New("payment provider API key is required")

	// ErrMissingWebhookSecret indicates the provider was constructed without a webhook signing secret.
	ErrMissingWebhookSecret = errors.New("payment provider webhook secret is required")

	// ErrProviderRequest indicates the provider was unreachable or rejected a request.
	ErrProviderRequest = errors.New("payment provider request failed")

	// ErrWebhookVerification covers webhook signature failures and unparseable
	// payloads alike; callers treat both as a potentially forged request.
	ErrWebhookVerification = errors.New("webhook verification failed")
)
