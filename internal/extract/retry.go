package extract

import (
	"context"

	"github.com/prooflab/artcheck/internal/resilience"
	"github.com/prooflab/artcheck/pkg/anthropic"
)

// retryingClient retries transient API failures before giving up on an
// extraction pass. Permanent errors pass through on the first attempt.
type retryingClient struct {
	inner anthropic.Client
	cfg   resilience.RetryConfig
}

func withRetry(inner anthropic.Client, cfg resilience.RetryConfig) anthropic.Client {
	return &retryingClient{inner: inner, cfg: cfg}
}

func (c *retryingClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	var resp *anthropic.MessageResponse
	err := resilience.Do(ctx, c.cfg, func(ctx context.Context) error {
		r, err := c.inner.CreateMessage(ctx, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
