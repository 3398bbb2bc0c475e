package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"commerce-nlu/internal/common/logger"
)

var fastRetry = RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		errs      []error
		wantErr   bool
		wantCalls int
	}{
		{"first try", []error{nil}, false, 1},
		{"transient then ok", []error{errors.New("connection refused"), nil}, false, 2},
		{"permanent", []error{errors.New("permission denied")}, true, 1},
		{"exhausted", []error{
			errors.New("unavailable"), errors.New("unavailable"), errors.New("unavailable"),
		}, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), fastRetry, logger.NewTestLogger(t), "op", func(context.Context) error {
				e := tt.errs[calls]
				calls++
				return e
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour}
	err := Retry(ctx, slow, logger.NewNoOpLogger(), "op", func(context.Context) error {
		return errors.New("deadline exceeded")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(errors.New("rpc error: code = Unavailable")))
	assert.True(t, IsTransient(errors.New("dial tcp: lookup zeebe: no such host")))
	assert.False(t, IsTransient(errors.New("NOT_FOUND: process")))
}
