package jwks

import (
	"context"
	"fmt"
	"sync"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"golang.org/x/sync/singleflight"
)

// ResolverCache hands out Resolvers, at most one per JWKS URL. All
// resolvers share one jwk.Cache, so two components verifying against the
// same endpoint reuse the same fetched key set.
//
// Registration failures are not memoized; a later call for the same URL
// retries.
type ResolverCache struct {
	cache *jwk.Cache
	group singleflight.Group

	mu        sync.Mutex
	resolvers map[string]*Resolver
}

// NewResolverCache creates a ResolverCache. The context governs the
// lifetime of the shared cache's background refresh goroutines.
func NewResolverCache(ctx context.Context) (*ResolverCache, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("jwks: create cache: %w", err)
	}

	return &ResolverCache{
		cache:     cache,
		resolvers: make(map[string]*Resolver),
	}, nil
}

// Resolver returns the Resolver for jwksURL, creating and memoizing it on
// first use. The first call registers the URL with the shared cache and
// blocks until the initial fetch completes, so a bad endpoint surfaces
// here rather than at verification time. Concurrent calls for the same
// URL are collapsed into one registration.
func (c *ResolverCache) Resolver(ctx context.Context, jwksURL string) (*Resolver, error) {
	c.mu.Lock()
	if r, ok := c.resolvers[jwksURL]; ok {
		c.mu.Unlock()
		return r, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(jwksURL, func() (any, error) {
		if !c.cache.IsRegistered(ctx, jwksURL) {
			if err := c.cache.Register(ctx, jwksURL); err != nil {
				return nil, fmt.Errorf("jwks: register %s: %w", jwksURL, err)
			}
		}

		r := &Resolver{url: jwksURL, cache: c.cache}

		c.mu.Lock()
		c.resolvers[jwksURL] = r
		c.mu.Unlock()

		return r, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Resolver), nil
}
