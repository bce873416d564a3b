package services

import (
	"context"
	"time"

	"socialctl/internal/client/media"
	"socialctl/internal/client/repositories/viewurls"
	"socialctl/internal/logging"
)

// CachedViewResolver resolves object keys to viewable URLs through the
// broker, caching results in the local database for the configured TTL. The
// cache TTL must stay below the signature lifetime the broker issues, so a
// cache hit is always a URL that still works.
type CachedViewResolver struct {
	upstream media.ViewResolver
	cache    viewurls.Repository
	ttl      time.Duration
	now      func() time.Time
	log      logging.Logger
}

func NewCachedViewResolver(upstream media.ViewResolver, cache viewurls.Repository, ttl time.Duration, log logging.Logger) *CachedViewResolver {
	if log == nil {
		log = logging.Discard()
	}
	return &CachedViewResolver{
		upstream: upstream,
		cache:    cache,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// ViewURL implements media.ViewResolver.
func (r *CachedViewResolver) ViewURL(ctx context.Context, key string) (string, error) {
	now := r.now()

	url, ok, err := r.cache.Get(ctx, key, now)
	if err != nil {
		// Cache trouble never blocks resolution.
		r.log.Warn(ctx, "view url cache read failed", "key", key, "error", err)
	} else if ok {
		return url, nil
	}

	url, err = r.upstream.ViewURL(ctx, key)
	if err != nil {
		return "", err
	}

	if err := r.cache.Put(ctx, key, url, now.Add(r.ttl)); err != nil {
		r.log.Warn(ctx, "view url cache write failed", "key", key, "error", err)
	}
	return url, nil
}

// PurgeExpired drops stale cache rows. Called on startup.
func (r *CachedViewResolver) PurgeExpired(ctx context.Context) error {
	return r.cache.Purge(ctx, r.now())
}
