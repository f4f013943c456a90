package webhooks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/eko/gocache/lib/v4/store"
)

// StoreReplayProtector keeps delivery fingerprints in a cache store so that
// replay state is shared across instances when the store is redis-backed.
// A delivery is a replay iff an identical (path + body) pair was seen within
// the TTL window.
type StoreReplayProtector struct {
	store store.StoreInterface
	ttl   time.Duration
}

func NewStoreReplayProtector(s store.StoreInterface, ttl time.Duration) *StoreReplayProtector {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &StoreReplayProtector{store: s, ttl: ttl}
}

func (p *StoreReplayProtector) Check(ctx context.Context, r *http.Request, body []byte) error {
	key := p.fingerprint(r, body)
	if _, err := p.store.Get(ctx, key); err == nil {
		return ErrReplayDetected
	}
	// Cache write failures degrade to no protection rather than rejecting the delivery.
	_ = p.store.Set(ctx, key, "1", store.WithExpiration(p.ttl))
	return nil
}

func (p *StoreReplayProtector) fingerprint(r *http.Request, body []byte) string {
	sum := sha256.Sum256(append([]byte(r.URL.Path+"\n"), body...))
	return "webhook:replay:" + hex.EncodeToString(sum[:])
}
