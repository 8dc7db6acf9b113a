package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Submission keys expire after an hour: long enough to swallow double
// submits and retries, short enough that a genuine repeat entry next shift
// is accepted.
const dedupTTL = time.Hour

// DedupChecker provides submission idempotency checks backed by Redis.
// Keys are built by the record service as submit:<table>:<owner>:<key>.
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this submission has already been accepted.
func (d *DedupChecker) IsDuplicate(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this submission has been accepted (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, key string) error {
	return d.client.Set(ctx, key, "1", dedupTTL).Err()
}
