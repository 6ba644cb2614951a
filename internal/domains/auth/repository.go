package auth

import (
	"context"
	"time"
)

// TokenRepository is the Credential Store: revocable session subjects
// with expiry. Any TTL-capable key-value store suffices; correctness
// relies on the store's own atomic set/get/delete, no client-side
// locking.
type TokenRepository interface {
	// Add stores the signed token under the subject key with a TTL.
	Add(ctx context.Context, key, value string, ttl time.Duration) error

	// Get reads the stored token; found = false means revoked or expired.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Revoke removes the subject key (logout / account deletion).
	Revoke(ctx context.Context, key string) error
}
