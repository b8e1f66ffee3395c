package user_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatgate/modules/user"
)

func TestMemoryStoreCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and created_at", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := &user.User{Email: "alice@example.com", PaymentCustomerID: "cus_abc"}
		require.NoError(t, store.Create(ctx, u))
		assert.NotZero(t, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		store := user.NewMemoryStore()
		require.NoError(t, store.Create(ctx, &user.User{Email: "alice@example.com"}))

		err := store.Create(ctx, &user.User{Email: "alice@example.com"})
		assert.ErrorIs(t, err, user.ErrEmailTaken)
	})

	t.Run("concurrent creates leave one row", func(t *testing.T) {
		store := user.NewMemoryStore()

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = store.Create(ctx, &user.User{Email: "race@example.com"})
			}(i)
		}
		wg.Wait()

		var created int
		for _, err := range errs {
			if err == nil {
				created++
			} else {
				assert.ErrorIs(t, err, user.ErrEmailTaken)
			}
		}
		assert.Equal(t, 1, created)
	})
}

func TestMemoryStoreLookups(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()

	u := &user.User{Email: "bob@example.com", PaymentCustomerID: "cus_bob"}
	require.NoError(t, store.Create(ctx, u))

	t.Run("by id", func(t *testing.T) {
		got, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", got.Email)
	})

	t.Run("by email", func(t *testing.T) {
		got, err := store.ByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("by payment customer id", func(t *testing.T) {
		got, err := store.ByPaymentCustomerID(ctx, "cus_bob")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("empty customer id never matches", func(t *testing.T) {
		fresh := user.NewMemoryStore()
		require.NoError(t, fresh.Create(ctx, &user.User{Email: "nocust@example.com"}))

		_, err := fresh.ByPaymentCustomerID(ctx, "")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("missing rows", func(t *testing.T) {
		_, err := store.ByID(ctx, 9999)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		_, err = store.ByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		got.SubscriptionStatus = user.StatusActive

		again, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, again.SubscriptionStatus)
	})
}

func TestMemoryStoreUpdateSubscription(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()

	u := &user.User{Email: "carol@example.com", PaymentCustomerID: "cus_carol"}
	require.NoError(t, store.Create(ctx, u))

	t.Run("activates and sets price", func(t *testing.T) {
		require.NoError(t, store.UpdateSubscription(ctx, "cus_carol", user.StatusActive, "sub_789"))

		got, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, user.StatusActive, got.SubscriptionStatus)
		assert.Equal(t, "sub_789", got.SubscriptionPriceID)
		assert.True(t, got.HasActiveSubscription())
	})

	t.Run("empty price keeps stored price", func(t *testing.T) {
		require.NoError(t, store.UpdateSubscription(ctx, "cus_carol", "past_due", ""))

		got, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "past_due", got.SubscriptionStatus)
		assert.Equal(t, "sub_789", got.SubscriptionPriceID)
		assert.False(t, got.HasActiveSubscription())
	})

	t.Run("idempotent replay", func(t *testing.T) {
		require.NoError(t, store.UpdateSubscription(ctx, "cus_carol", user.StatusActive, "sub_789"))
		require.NoError(t, store.UpdateSubscription(ctx, "cus_carol", user.StatusActive, "sub_789"))

		got, err := store.ByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, user.StatusActive, got.SubscriptionStatus)
		assert.Equal(t, "sub_789", got.SubscriptionPriceID)
	})

	t.Run("unknown customer", func(t *testing.T) {
		err := store.UpdateSubscription(ctx, "cus_unknown", user.StatusActive, "sub_1")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}
