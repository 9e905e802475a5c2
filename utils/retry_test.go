package utils

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: NewNopLogger()}

	calls := 0
	err := r.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryGivesUp(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: NewNopLogger()}
	boom := errors.New("boom")

	calls := 0
	err := r.Do(context.Background(), "always-fails", func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "always-fails failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &RetryConfig{MaxAttempts: 5, BaseDelay: time.Hour}

	calls := 0
	err := r.Do(ctx, "cancelled", func() error {
		calls++
		return errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "warn")

	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLoggerSendsErrorsToSeparateStream(t *testing.T) {
	var out, errOut bytes.Buffer
	l := newLogger(&out, &errOut, "debug")

	l.Info("progress %d", 1)
	l.Warn("careful %d", 2)
	l.Error("failed %d", 3)

	assert.Contains(t, out.String(), "progress 1")
	assert.Contains(t, out.String(), "careful 2")
	assert.NotContains(t, out.String(), "failed 3")
	assert.Contains(t, errOut.String(), "failed 3")
	assert.NotContains(t, errOut.String(), "progress")
}
