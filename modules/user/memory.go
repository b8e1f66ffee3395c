package user

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store for tests and local development.
// It mirrors the PostgreSQL store's semantics, including the email
// uniqueness constraint that settles concurrent creation races.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		users:  make(map[int64]*User),
	}
}

func (s *MemoryStore) ByID(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) ByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) ByPaymentCustomerID(_ context.Context, customerID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if customerID == "" {
		return nil, ErrUserNotFound
	}
	for _, u := range s.users {
		if u.PaymentCustomerID == customerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}

	u.ID = s.nextID
	s.nextID++
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateSubscription(_ context.Context, customerID, status, priceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if customerID == "" {
		return ErrUserNotFound
	}
	for _, u := range s.users {
		if u.PaymentCustomerID == customerID {
			u.SubscriptionStatus = status
			if priceID != "" {
				u.SubscriptionPriceID = priceID
			}
			return nil
		}
	}
	return ErrUserNotFound
}
