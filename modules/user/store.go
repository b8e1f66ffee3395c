package user

import "context"

// Store defines the interface for user persistence.
//
// Create is the only way a row comes into existence; SubscriptionStatus and
// SubscriptionPriceID are mutated only through UpdateSubscription, which the
// webhook reconciler owns.
type Store interface {
	// ByID retrieves a user by primary key.
	// Returns ErrUserNotFound if no user exists.
	ByID(ctx context.Context, id int64) (*User, error)

	// ByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no user exists.
	ByEmail(ctx context.Context, email string) (*User, error)

	// ByPaymentCustomerID retrieves a user by the provider customer id.
	// Returns ErrUserNotFound if no user exists.
	ByPaymentCustomerID(ctx context.Context, customerID string) (*User, error)

	// Create inserts a new user row, filling in ID and CreatedAt.
	// Returns ErrEmailTaken when the email uniqueness constraint fires,
	// which is how the loser of a concurrent creation race finds out.
	Create(ctx context.Context, u *User) error

	// UpdateSubscription sets the subscription status for the user with the
	// given provider customer id. An empty priceID leaves the stored price
	// untouched; a non-empty one replaces it. Returns ErrUserNotFound when
	// no row matches the customer id.
	UpdateSubscription(ctx context.Context, customerID, status, priceID string) error
}
