package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	guardWindow      = 15 * time.Minute
	guardMaxAttempts = 5
)

// LoginGuard rate-limits credential-bearing endpoints with a fixed-window
// counter per client key. Key format: authguard:<endpoint>:<client>
type LoginGuard struct {
	client *redis.Client
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client}
}

// Allow records one attempt and reports whether the caller is still under
// the window limit. The window starts with the first attempt and expires
// as a whole.
func (g *LoginGuard) Allow(ctx context.Context, endpoint, clientKey string) (bool, error) {
	key := g.key(endpoint, clientKey)

	pipe := g.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, guardWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("auth guard: %w", err)
	}

	return count.Val() <= guardMaxAttempts, nil
}

func (g *LoginGuard) key(endpoint, clientKey string) string {
	return fmt.Sprintf("authguard:%s:%s", endpoint, clientKey)
}
