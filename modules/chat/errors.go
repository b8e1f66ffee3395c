package chat

import "errors"

var (
	// ErrSubscriptionRequired indicates the user is absent or has no active subscription.
	ErrSubscriptionRequired = errors.New("active subscription required")

	// ErrChatUnavailable indicates the chat collaborator was unreachable, erroring, or timed out.
	ErrChatUnavailable = errors.New("chat completion unavailable")
)
