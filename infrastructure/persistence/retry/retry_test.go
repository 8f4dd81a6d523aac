package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ordering/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	cfg := DefaultConfig
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	cfg.JitterEnabled = false
	return cfg
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Reason
	}{
		{"nil", nil, ReasonNone},
		{"optimistic lock", shared.NewConcurrentModificationError("order", "o-1"), ReasonConcurrentModification},
		{"wrapped optimistic lock", fmt.Errorf("save: %w", shared.NewConcurrentModificationError("order", "o-1")), ReasonConcurrentModification},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found"}, ReasonDeadlock},
		{"mysql lock timeout", &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}, ReasonLockTimeout},
		{"deadlock text", errors.New("Error 1213: Deadlock found when trying to get lock"), ReasonDeadlock},
		{"connection lost", errors.New("connection was lost"), ReasonConnectionLost},
		{"duplicate key", &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}, ReasonNone},
		{"domain conflict", shared.NewConflictError("product", "name taken"), ReasonNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestIsRetryable_RespectsSwitches(t *testing.T) {
	cfg := DefaultConfig
	conflict := shared.NewConcurrentModificationError("order", "o-1")
	deadlock := &mysqlDriver.MySQLError{Number: 1213}

	assert.True(t, IsRetryable(conflict, cfg))
	assert.True(t, IsRetryable(deadlock, cfg))

	cfg.RetryOnConcurrentModification = false
	cfg.RetryOnDeadlock = false
	assert.False(t, IsRetryable(conflict, cfg))
	assert.False(t, IsRetryable(deadlock, cfg))

	boom := errors.New("boom")
	cfg.RetryPredicate = func(err error) bool { return errors.Is(err, boom) }
	assert.True(t, IsRetryable(boom, cfg))
}

func TestBackoff(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: 300 * time.Millisecond, BackoffFactor: 2}

	assert.Equal(t, time.Duration(0), Backoff(0, cfg))
	assert.Equal(t, 100*time.Millisecond, Backoff(1, cfg))
	assert.Equal(t, 200*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, 300*time.Millisecond, Backoff(3, cfg))

	cfg.JitterEnabled = true
	for i := 0; i < 20; i++ {
		d := Backoff(1, cfg)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond)
		assert.Less(t, d, 120*time.Millisecond)
	}
}

func TestExecuteWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient conflicts", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(ctx, fastConfig(3), func(context.Context) error {
			calls++
			if calls < 3 {
				return shared.NewConcurrentModificationError("order", "o-1")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops at max attempts", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(ctx, fastConfig(2), func(context.Context) error {
			calls++
			return shared.NewConcurrentModificationError("order", "o-1")
		})
		assert.ErrorIs(t, err, shared.ErrConcurrentModification)
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry domain errors", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(ctx, fastConfig(5), func(context.Context) error {
			calls++
			return shared.NewNotFoundError("order", "o-1")
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Equal(t, 1, calls)
	})

	t.Run("disabled runs once", func(t *testing.T) {
		cfg := fastConfig(5)
		cfg.Enabled = false
		calls := 0
		_ = ExecuteWithRetry(ctx, cfg, func(context.Context) error {
			calls++
			return shared.NewConcurrentModificationError("order", "o-1")
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		calls := 0
		err := ExecuteWithRetry(cctx, fastConfig(5), func(context.Context) error {
			calls++
			cancel()
			return shared.NewConcurrentModificationError("order", "o-1")
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
