package user

import "time"

// Subscription status values this service branches on. The column accepts
// arbitrary provider-defined states; only StatusActive grants chat access.
const (
	StatusActive = "active"
)

// User is the persisted subscription identity. A row is created lazily on
// the first checkout attempt for an unseen email.
//
// Empty string fields mean "unset": a user with no PaymentCustomerID has
// never attempted checkout; a user with a PaymentCustomerID but no
// SubscriptionStatus started checkout without completing it.
type User struct {
	ID                  int64
	Email               string // Unique; identifies the user for checkout lookup.
	PaymentCustomerID   string // Provider customer id; immutable once set.
	SubscriptionPriceID string
	SubscriptionStatus  string
	CreatedAt           time.Time
}

// HasActiveSubscription reports whether the user may invoke gated capabilities.
func (u *User) HasActiveSubscription() bool {
	return u.SubscriptionStatus == StatusActive
}
