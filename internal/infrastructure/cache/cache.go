package cache

import (
	"context"
	"time"
)

// SummaryCache stores generated summaries keyed by transcript hash.
// Implementations are best effort: a failed Set is dropped silently and a
// failed Get reports a miss.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}
