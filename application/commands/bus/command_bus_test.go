package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCommand struct {
	fail bool
}

func (c testCommand) Validate() error {
	if c.fail {
		return errors.New("invalid")
	}
	return nil
}

func TestCommandBus(t *testing.T) {
	ctx := context.Background()

	t.Run("dispatches to the registered handler", func(t *testing.T) {
		b := NewCommandBus()
		handled := false
		require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			handled = true
			return nil
		})))

		require.NoError(t, b.Send(ctx, testCommand{}))
		assert.True(t, handled)
	})

	t.Run("validation failure short-circuits dispatch", func(t *testing.T) {
		b := NewCommandBus()
		handled := false
		require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			handled = true
			return nil
		})))

		assert.Error(t, b.Send(ctx, testCommand{fail: true}))
		assert.False(t, handled)
	})

	t.Run("handler errors pass through untouched", func(t *testing.T) {
		b := NewCommandBus()
		sentinel := errors.New("boom")
		require.NoError(t, b.Register(testCommand{}, CommandHandlerFunc(func(ctx context.Context, cmd Command) error {
			return sentinel
		})))

		err := b.Send(ctx, testCommand{})
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("rejects duplicate registration", func(t *testing.T) {
		b := NewCommandBus()
		handler := CommandHandlerFunc(func(ctx context.Context, cmd Command) error { return nil })
		require.NoError(t, b.Register(testCommand{}, handler))
		assert.Error(t, b.Register(testCommand{}, handler))
	})

	t.Run("unregistered command type fails", func(t *testing.T) {
		b := NewCommandBus()
		err := b.Send(ctx, testCommand{})
		assert.ErrorIs(t, err, ErrHandlerNotFound)
	})
}
