package user

import "errors"

var (
	// ErrUserNotFound indicates no user row matched the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates the email uniqueness constraint rejected a create.
	ErrEmailTaken = errors.New("email already taken")
)
