package jwks

import (
	"context"
	"crypto"
	"errors"
	"fmt"

	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"

	"github.com/vitalvas/sigward/httpsig"
)

var (
	// ErrKeyNotFound is returned when the key set has no usable key for
	// the requested key ID and algorithm.
	ErrKeyNotFound = errors.New("jwks: key not found")

	// ErrUnsupportedAlgorithm is returned when a signature algorithm has
	// no JOSE equivalent known to this package.
	ErrUnsupportedAlgorithm = errors.New("jwks: unsupported signature algorithm")
)

// joseAlgorithms maps HTTP signature algorithm names to the algorithm
// identifiers used in JWK "alg" fields.
var joseAlgorithms = map[string]jwa.SignatureAlgorithm{
	httpsig.AlgorithmRSAPSSSHA512:    jwa.PS512(),
	httpsig.AlgorithmRSAv15SHA256:    jwa.RS256(),
	httpsig.AlgorithmEd25519:         jwa.EdDSA(),
	httpsig.AlgorithmECDSAP256SHA256: jwa.ES256(),
	httpsig.AlgorithmECDSAP384SHA384: jwa.ES384(),
}

// Resolver resolves key IDs against a single JWKS endpoint. It is a thin
// adapter over a shared jwk.Cache, which owns fetching, caching and
// refresh; resolution itself is a pure function of the fetched key set.
//
// Create Resolvers through a ResolverCache (or NewResolver for a
// standalone one).
type Resolver struct {
	url   string
	cache *jwk.Cache
}

// NewResolver creates a standalone Resolver with its own cache for the
// given JWKS URL. The context governs both the initial fetch and the
// lifetime of the background refresh; cancel it to release the cache's
// goroutines.
//
// Services resolving against several endpoints should prefer a shared
// ResolverCache.
func NewResolver(ctx context.Context, jwksURL string) (*Resolver, error) {
	cache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("jwks: create cache: %w", err)
	}

	if err := cache.Register(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("jwks: register %s: %w", jwksURL, err)
	}

	return &Resolver{url: jwksURL, cache: cache}, nil
}

// URL returns the JWKS endpoint this resolver reads from.
func (r *Resolver) URL() string { return r.url }

// ResolveKey implements httpsig.KeyResolver. It looks up keyID in the
// cached key set, checks the key's declared JOSE algorithm against the
// requested signature algorithm, and exports the raw public key.
func (r *Resolver) ResolveKey(ctx context.Context, keyID, algorithm string) (crypto.PublicKey, error) {
	joseAlg, ok := joseAlgorithms[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	set, err := r.cache.Lookup(ctx, r.url)
	if err != nil {
		return nil, fmt.Errorf("jwks: fetch %s: %w", r.url, err)
	}

	key, ok := set.LookupKeyID(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, keyID)
	}

	// A key advertising a different algorithm is not usable for this
	// signature, even under a matching key ID.
	if alg, ok := key.Algorithm(); ok && alg.String() != joseAlg.String() {
		return nil, fmt.Errorf("%w: key %q not usable with %s", ErrKeyNotFound, keyID, algorithm)
	}

	public, err := jwk.PublicKeyOf(key)
	if err != nil {
		return nil, fmt.Errorf("jwks: public key of %q: %w", keyID, err)
	}

	var raw any
	if err := jwk.Export(public, &raw); err != nil {
		return nil, fmt.Errorf("jwks: export key %q: %w", keyID, err)
	}

	return raw, nil
}
