// Package httpsig implements HTTP Message Signatures per RFC 9421 with
// optional Content-Digest support per RFC 9530.
//
// It provides client-side signing (via Signer and Transport) and
// server-side verification (via Verifier and Middleware). Verification
// outcomes are reported as data: a VerificationResult carrying one of a
// closed set of error codes, never a Go error, so callers translate
// outcomes into transport responses without catching anything.
//
// # Algorithms
//
// Signature algorithms live in a Registry, constructed once at process
// start and injected into Signer and Verifier construction. NewRegistry
// pre-registers five algorithms:
//
//   - rsa-pss-sha512 (RSASSA-PSS, SHA-512, digest-length salt)
//   - rsa-v1_5-sha256 (RSASSA-PKCS1-v1_5, SHA-256)
//   - ed25519 (Edwards-Curve DSA)
//   - ecdsa-p256-sha256 (ECDSA P-256)
//   - ecdsa-p384-sha384 (ECDSA P-384)
//
// Register replaces any entry of the same name, which tests use to
// inject fakes.
//
// # Signing Requests
//
// A Signer binds a private key, key ID, algorithm and covered component
// list at construction and produces signature headers for outgoing
// requests:
//
//	signer, err := httpsig.NewSigner(httpsig.SignerConfig{
//	    KeyID:      "client-key-1",
//	    Algorithm:  httpsig.AlgorithmRSAPSSSHA512,
//	    Key:        pemString,
//	    Components: []string{httpsig.ComponentMethod, httpsig.ComponentTargetURI, "content-digest"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers, err := signer.Sign(httpsig.Request{
//	    Method: "POST",
//	    URL:    "https://api.example.com/data",
//	    Body:   payload,
//	})
//
// # Verifying Requests
//
// A Verifier resolves public keys through a KeyResolver (see the jwks
// package) and walks a fixed sequence of checks, short-circuiting on the
// first failure:
//
//	verifier := httpsig.NewVerifier(httpsig.VerifierConfig{
//	    Resolver: resolver,
//	    MaxAge:   5 * time.Minute,
//	})
//
//	result := verifier.VerifyRequest(r.Context(), r)
//	if !result.Valid {
//	    // result.Error is one of the Code* constants.
//	}
//
// # Server Middleware
//
// Middleware wraps a Verifier as a request gate. Failures produce a 401
// (or 500 for server misconfiguration) with a WWW-Authenticate challenge
// and a JSON body; successful verification attaches a SignatureInfo to
// the request context:
//
//	mw, err := httpsig.Middleware(httpsig.MiddlewareConfig{Verifier: verifier})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	handler = mw(handler)
//
//	// downstream:
//	info, ok := httpsig.SignatureInfoFromContext(r.Context())
//
// # Client Transport
//
// NewTransport returns an http.RoundTripper that signs every outgoing
// request with a bound Signer:
//
//	client := &http.Client{Transport: httpsig.NewTransport(nil, signer)}
package httpsig
