package user

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/chatgate/pkg/pg"
)

// PGStore implements Store on a pgx connection pool. Every method acquires
// and releases its connection through the pool, so each request gets its own
// scoped session.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a Store backed by PostgreSQL.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

const userColumns = `id, email, payment_customer_id, subscription_price_id, subscription_status, created_at`

func (s *PGStore) scanUser(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PaymentCustomerID,
		&u.SubscriptionPriceID,
		&u.SubscriptionStatus,
		&u.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *PGStore) ByID(ctx context.Context, id int64) (*User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (s *PGStore) ByEmail(ctx context.Context, email string) (*User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *PGStore) ByPaymentCustomerID(ctx context.Context, customerID string) (*User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE payment_customer_id = $1`, customerID)
}

func (s *PGStore) Create(ctx context.Context, u *User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (email, payment_customer_id, subscription_price_id, subscription_status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		u.Email, u.PaymentCustomerID, u.SubscriptionPriceID, u.SubscriptionStatus,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PGStore) UpdateSubscription(ctx context.Context, customerID, status, priceID string) error {
	// NULLIF/COALESCE keeps the stored price when the event carries none.
	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET subscription_status = $2,
		     subscription_price_id = COALESCE(NULLIF($3, ''), subscription_price_id)
		 WHERE payment_customer_id = $1`,
		customerID, status, priceID,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
