package viewurls

import (
	"context"
	"time"
)

// Repository caches resolved view URLs by object key. Entries carry an
// expiry because the URLs themselves are time-limited signatures; an expired
// entry is as good as absent.
type Repository interface {
	// Get returns the cached URL for key if one exists and is still valid
	// at now.
	Get(ctx context.Context, key string, now time.Time) (string, bool, error)
	Put(ctx context.Context, key, url string, expiresAt time.Time) error
	// Purge drops every entry expired at now.
	Purge(ctx context.Context, now time.Time) error
}
