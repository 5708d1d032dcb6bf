package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limitErr struct{ hint time.Duration }

func (e limitErr) Error() string            { return "429" }
func (e limitErr) RetryHint() time.Duration { return e.hint }

type recordingSleeper struct {
	waits []time.Duration
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func TestDoRetriesRateLimitThenSucceeds(t *testing.T) {
	sleeper := &recordingSleeper{}
	policy := Policy{MaxRetries: 3, BaseDelay: 2 * time.Second, Sleeper: sleeper}

	calls := 0
	got, err := Do(context.Background(), policy, func(ctx context.Context) (int, error) {
		calls++
		if calls <= 2 {
			return 0, limitErr{}
		}
		return 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, got)
	assert.Equal(t, 3, calls)
	require.Len(t, sleeper.waits, 2)
	assert.Equal(t, 2*time.Second, sleeper.waits[0])
	assert.Equal(t, 4*time.Second, sleeper.waits[1])
	assert.GreaterOrEqual(t, sleeper.waits[1], sleeper.waits[0])
}

func TestDoUsesServerHint(t *testing.T) {
	sleeper := &recordingSleeper{}
	policy := Policy{MaxRetries: 3, BaseDelay: 2 * time.Second, Sleeper: sleeper}

	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", limitErr{hint: 7 * time.Second}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, sleeper.waits)
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	sleeper := &recordingSleeper{}
	policy := Policy{MaxRetries: 3, BaseDelay: time.Second, Sleeper: sleeper}

	calls := 0
	_, err := Do(context.Background(), policy, func(ctx context.Context) (int, error) {
		calls++
		return 0, limitErr{}
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRetriesExhausted))
	var limited RateLimited
	assert.True(t, errors.As(err, &limited), "original rate-limit error must stay in the chain")
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, sleeper.waits)
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	sleeper := &recordingSleeper{}
	boom := errors.New("boom")

	calls := 0
	_, err := Do(context.Background(), Policy{MaxRetries: 3, Sleeper: sleeper}, func(ctx context.Context) (int, error) {
		calls++
		return 0, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.waits)
}

func TestRealSleeperHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RealSleeper.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
