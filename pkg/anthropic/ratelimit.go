package anthropic

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// rateLimitedClient throttles CreateMessage calls to a fixed request
// rate across goroutines.
type rateLimitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

// RateLimited wraps a Client with a requests-per-minute ceiling.
// rpm <= 0 disables throttling.
func RateLimited(inner Client, rpm int) Client {
	if rpm <= 0 {
		return inner
	}
	return &rateLimitedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}
}

func (c *rateLimitedClient) CreateMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "anthropic: rate limit wait")
	}
	return c.inner.CreateMessage(ctx, req)
}
