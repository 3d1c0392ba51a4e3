package httpsig

import "errors"

// Construction errors.
var (
	// ErrNoSigner is returned when a Transport is created without a Signer.
	ErrNoSigner = errors.New("httpsig: signer must not be nil")

	// ErrNoVerifier is returned when Middleware is created without a Verifier.
	ErrNoVerifier = errors.New("httpsig: verifier must not be nil")

	// ErrUnknownAlgorithm is returned when SignerConfig names an algorithm
	// that is not present in the registry.
	ErrUnknownAlgorithm = errors.New("httpsig: unknown signature algorithm")

	// ErrInvalidKey is returned when key material is invalid (nil, wrong
	// type for the algorithm, unparsable PEM, insufficient size).
	ErrInvalidKey = errors.New("httpsig: invalid key material")

	// ErrInvalidComponent is returned when a covered component identifier
	// is neither a known derived component nor a valid header field name.
	ErrInvalidComponent = errors.New("httpsig: invalid component identifier")
)

// Signing errors.
var (
	// ErrSigningFailed is returned when the bound algorithm fails to
	// produce a signature.
	ErrSigningFailed = errors.New("httpsig: signing failed")
)

// Digest errors.
var (
	// ErrDigestMismatch is returned when Content-Digest verification fails.
	ErrDigestMismatch = errors.New("httpsig: content digest mismatch")

	// ErrDigestNotFound is returned when a Content-Digest header is
	// required but not present.
	ErrDigestNotFound = errors.New("httpsig: content digest not found")

	// ErrUnsupportedDigest is returned when the digest algorithm is not
	// supported.
	ErrUnsupportedDigest = errors.New("httpsig: unsupported digest algorithm")
)
