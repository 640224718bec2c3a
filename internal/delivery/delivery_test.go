package delivery

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		outcome Outcome
		wait    time.Duration
	}{
		{name: "nil is delivered", err: nil, outcome: OutcomeDelivered},
		{
			name:    "rate limited carries retry after",
			err:     fmt.Errorf("copy: %w", &RateLimitedError{RetryAfter: 3 * time.Second}),
			outcome: OutcomeRateLimited,
			wait:    3 * time.Second,
		},
		{
			name:    "unreachable recipient",
			err:     fmt.Errorf("%w: blocked", ErrRecipientUnreachable),
			outcome: OutcomeUnreachable,
		},
		{name: "anything else is failed", err: errors.New("boom"), outcome: OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, wait := Classify(tt.err)
			assert.Equal(t, tt.outcome, outcome)
			assert.Equal(t, tt.wait, wait)
		})
	}
}

func TestWait_ZeroDelayReturnsImmediately(t *testing.T) {
	require.NoError(t, Wait(context.Background(), 0))
}

func TestWait_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
}
