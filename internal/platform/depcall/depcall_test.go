package depcall

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cat-shelter/internal/platform/logger"
	"cat-shelter/internal/platform/metrics"
	"cat-shelter/internal/platform/sentinel"
)

func TestCall_RetriesTransientAndRecordsMetrics(t *testing.T) {
	m := metrics.New()
	var buf bytes.Buffer
	c := Caller{
		Attempts: 2,
		Log:      logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf}),
		Metrics:  m,
	}

	calls := 0
	v, err := Call(context.Background(), c, "billing", "get_offer", func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", fmt.Errorf("dial: %w", sentinel.ErrUnavailable)
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyRetries.WithLabelValues("billing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyCalls.WithLabelValues("billing", metrics.OutcomeTransient)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyCalls.WithLabelValues("billing", metrics.OutcomeOK)))
	assert.Contains(t, buf.String(), "retrying")
}

func TestCall_ExhaustedIsInternal(t *testing.T) {
	err := Exec(context.Background(), Caller{}, "prices", "get_history", func(context.Context) error {
		return sentinel.ErrUnavailable
	})
	assert.ErrorIs(t, err, sentinel.ErrInternal)
	assert.False(t, sentinel.IsTransient(err))
}

func TestLookup_NotFoundPassesThrough(t *testing.T) {
	m := metrics.New()
	calls := 0
	_, err := Lookup(context.Background(), Caller{Metrics: m}, "breeds", "find_by_name", func(context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("breed: %w", sentinel.ErrNotFound)
	})

	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyCalls.WithLabelValues("breeds", metrics.OutcomeNotFound)))
}

func TestCall_NotFoundIsInternal(t *testing.T) {
	m := metrics.New()
	calls := 0
	_, err := Call(context.Background(), Caller{Metrics: m}, "billing", "sell", func(context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("offer: %w", sentinel.ErrNotFound)
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel.ErrInternal)
	// la causa queda en la cadena para los logs
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DependencyCalls.WithLabelValues("billing", metrics.OutcomeNotFound)))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, metrics.OutcomeOK, outcome(nil))
	assert.Equal(t, metrics.OutcomeError, outcome(errors.New("boom")))
}

func TestCall_NonTransientBecomesInternal(t *testing.T) {
	cause := errors.New("bad payload")
	calls := 0
	err := Exec(context.Background(), Caller{}, "auth", "authorize", func(context.Context) error {
		calls++
		return cause
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel.ErrInternal)
	assert.ErrorIs(t, err, cause)
}

func TestCall_CancelledStaysCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Exec(ctx, Caller{}, "auth", "authorize", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, sentinel.ErrInternal)
}
