package billing

import "errors"

var (
	// ErrMissingFrontendURL indicates the redirect base URL is not configured.
	ErrMissingFrontendURL = errors.New("frontend URL is required")

	// ErrPaymentUnavailable indicates the payment provider was unreachable,
	// erroring, or timed out.
	ErrPaymentUnavailable = errors.New("payment provider unavailable")

	// ErrInvalidSignature indicates webhook verification failed; the request
	// is treated as potentially forged and rejected without state changes.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
