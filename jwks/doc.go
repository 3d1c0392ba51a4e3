// Package jwks resolves HTTP message signature keys from JSON Web Key
// Set endpoints.
//
// A Resolver implements httpsig.KeyResolver against one JWKS URL. The
// underlying fetching, in-memory caching and refresh-on-rotation are
// delegated to jwk.Cache from github.com/lestrrat-go/jwx; this package
// only translates signature algorithm names to their JOSE equivalents
// (for example rsa-pss-sha512 to PS512) and exports matched keys as raw
// public keys.
//
// A ResolverCache hands out at most one Resolver per JWKS URL, so
// repeated construction shares the cache behind it:
//
//	cache, err := jwks.NewResolverCache(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resolver, err := cache.Resolver(ctx, "https://issuer.example.com/.well-known/jwks.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	verifier := httpsig.NewVerifier(httpsig.VerifierConfig{Resolver: resolver})
package jwks
