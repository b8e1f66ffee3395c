package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/chatgate/modules/chat"
	"github.com/dmitrymomot/chatgate/modules/user"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}

func activeUser(t *testing.T, store *user.MemoryStore) *user.User {
	t.Helper()
	u := &user.User{Email: "alice@example.com", PaymentCustomerID: "cus_abc"}
	require.NoError(t, store.Create(context.Background(), u))
	require.NoError(t, store.UpdateSubscription(context.Background(), "cus_abc", user.StatusActive, "sub_789"))
	return u
}

func TestServiceSend(t *testing.T) {
	ctx := context.Background()

	t.Run("active subscription gets reply verbatim", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := activeUser(t, store)

		completer := new(mockCompleter)
		completer.On("Complete", mock.Anything, "hello").Return("  Hi! \n", nil).Once()

		svc := chat.NewService(store, completer, nil)
		reply, err := svc.Send(ctx, u.ID, "hello")
		require.NoError(t, err)
		assert.Equal(t, "  Hi! \n", reply, "reply must pass through unmodified")
		completer.AssertExpectations(t)
	})

	t.Run("absent user denied without collaborator call", func(t *testing.T) {
		completer := new(mockCompleter)
		svc := chat.NewService(user.NewMemoryStore(), completer, nil)

		_, err := svc.Send(ctx, 42, "hello")
		assert.ErrorIs(t, err, chat.ErrSubscriptionRequired)
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("unset status denied", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := &user.User{Email: "bob@example.com", PaymentCustomerID: "cus_bob"}
		require.NoError(t, store.Create(ctx, u))

		completer := new(mockCompleter)
		svc := chat.NewService(store, completer, nil)

		_, err := svc.Send(ctx, u.ID, "hello")
		assert.ErrorIs(t, err, chat.ErrSubscriptionRequired)
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("non-active provider status denied", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := &user.User{Email: "carol@example.com", PaymentCustomerID: "cus_carol"}
		require.NoError(t, store.Create(ctx, u))
		require.NoError(t, store.UpdateSubscription(ctx, "cus_carol", "past_due", "sub_1"))

		completer := new(mockCompleter)
		svc := chat.NewService(store, completer, nil)

		_, err := svc.Send(ctx, u.ID, "hello")
		assert.ErrorIs(t, err, chat.ErrSubscriptionRequired)
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})

	t.Run("collaborator failure surfaces as unavailable", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := activeUser(t, store)

		completer := new(mockCompleter)
		completer.On("Complete", mock.Anything, "hello").Return("", errors.New("upstream timeout")).Once()

		svc := chat.NewService(store, completer, nil)
		_, err := svc.Send(ctx, u.ID, "hello")
		assert.ErrorIs(t, err, chat.ErrChatUnavailable)
		completer.AssertExpectations(t)
	})

	t.Run("collaborator invoked exactly once", func(t *testing.T) {
		store := user.NewMemoryStore()
		u := activeUser(t, store)

		completer := new(mockCompleter)
		completer.On("Complete", mock.Anything, "hello").Return("hi", nil).Once()

		svc := chat.NewService(store, completer, nil)
		_, err := svc.Send(ctx, u.ID, "hello")
		require.NoError(t, err)
		completer.AssertNumberOfCalls(t, "Complete", 1)
	})
}

func TestNewServicePanics(t *testing.T) {
	assert.Panics(t, func() { chat.NewService(nil, new(mockCompleter), nil) })
	assert.Panics(t, func() { chat.NewService(user.NewMemoryStore(), nil, nil) })
}
