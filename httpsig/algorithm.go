package httpsig

import "crypto"

// Algorithm names registered by NewRegistry, as they appear in the
// HTTP Signature Algorithms Registry (RFC 9421 Section 6.2).
const (
	// AlgorithmRSAPSSSHA512 is RSASSA-PSS using SHA-512.
	AlgorithmRSAPSSSHA512 = "rsa-pss-sha512"

	// AlgorithmRSAv15SHA256 is RSASSA-PKCS1-v1_5 using SHA-256.
	AlgorithmRSAv15SHA256 = "rsa-v1_5-sha256"

	// AlgorithmEd25519 is Edwards-Curve Digital Signature Algorithm
	// using curve 25519.
	AlgorithmEd25519 = "ed25519"

	// AlgorithmECDSAP256SHA256 is ECDSA using curve P-256 and SHA-256.
	AlgorithmECDSAP256SHA256 = "ecdsa-p256-sha256"

	// AlgorithmECDSAP384SHA384 is ECDSA using curve P-384 and SHA-384.
	AlgorithmECDSAP384SHA384 = "ecdsa-p384-sha384"
)

// Algorithm is a named signing/verification capability operating on opaque
// key material. Implementations downcast the key to their native type and
// treat any mismatch as a verification failure rather than a fault.
//
// Algorithm values are immutable once registered.
type Algorithm interface {
	// Name returns the algorithm identifier as registered in the HTTP
	// Signature Algorithms Registry.
	Name() string

	// Sign produces a signature over data using the given private key.
	Sign(key crypto.PrivateKey, data []byte) ([]byte, error)

	// Verify reports whether signature is valid for data under the given
	// public key. It returns false, never panics, for malformed keys or
	// signature bytes: at this layer verification failures are data.
	Verify(key crypto.PublicKey, signature, data []byte) bool
}
