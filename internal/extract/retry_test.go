package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prooflab/artcheck/internal/resilience"
	"github.com/prooflab/artcheck/pkg/anthropic"
)

// flakyClient fails with errs in order, then serves resp.
type flakyClient struct {
	errs  []error
	resp  *anthropic.MessageResponse
	calls int
}

func (f *flakyClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return f.resp, nil
}

func testRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestWithRetryRecoversFromTransientError(t *testing.T) {
	inner := &flakyClient{
		errs: []error{errors.New("anthropic: 529 overloaded")},
		resp: textResponse("ok"),
	}

	client := withRetry(inner, testRetryConfig())
	resp, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, 2, inner.calls)
}

func TestWithRetryPassesPermanentErrorThrough(t *testing.T) {
	permanent := errors.New("400 invalid_request_error")
	inner := &flakyClient{errs: []error{permanent, permanent, permanent}}

	client := withRetry(inner, testRetryConfig())
	_, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, inner.calls)
}

func TestWithRetryGivesUpAfterMaxAttempts(t *testing.T) {
	transient := errors.New("429 rate limit exceeded")
	inner := &flakyClient{errs: []error{transient, transient, transient, transient}}

	client := withRetry(inner, testRetryConfig())
	_, err := client.CreateMessage(context.Background(), anthropic.MessageRequest{})

	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}
