package openai

import "errors"

var (
	// ErrAPIKeyRequired indicates the client was constructed without an API key.
	ErrAPIKeyRequired = errors.New("openai API key is required")

	// ErrRequestFailed indicates the API was unreachable or returned an error.
	ErrRequestFailed = errors.New("openai request failed")

	// ErrRateLimitExceeded indicates the API rejected the request for rate limiting.
	ErrRateLimitExceeded = errors.New("openai rate limit exceeded")

	// ErrEmptyResponse indicates the API returned no completion choices.
	ErrEmptyResponse = errors.New("openai returned no completion choices")
)
