package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestChecker_Run(t *testing.T) {
	c := NewChecker(time.Second,
		Probe{Name: "db", Check: func(context.Context) error { return nil }},
		Probe{Name: "redis", Check: func(context.Context) error { return errors.New("down") }},
	)

	failures := c.Run(context.Background())
	require.Len(t, failures, 1)
	require.EqualError(t, failures["redis"], "down")
	require.False(t, c.Healthy(context.Background()))
}

func TestChecker_Timeout(t *testing.T) {
	c := NewChecker(20*time.Millisecond, Probe{Name: "slow", Check: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	failures := c.Run(context.Background())
	require.ErrorIs(t, failures["slow"], context.DeadlineExceeded)
}

func TestChecker_NoProbes(t *testing.T) {
	require.True(t, NewChecker(0).Healthy(context.Background()))
}
