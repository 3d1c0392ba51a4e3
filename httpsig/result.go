package httpsig

// ErrorCode classifies a verification failure. Codes form a closed set so
// that clients can map them uniformly onto transport responses.
type ErrorCode string

const (
	// CodeSignatureRequired means the Signature or Signature-Input header
	// is absent from a request that must be signed.
	CodeSignatureRequired ErrorCode = "signature_required"

	// CodeInvalidSignature means the headers could not be parsed into a
	// usable signature, the labels did not match, or the cryptographic
	// check came back negative.
	CodeInvalidSignature ErrorCode = "invalid_signature"

	// CodeMissingComponents means a signature is present but does not
	// cover all components the server requires.
	CodeMissingComponents ErrorCode = "missing_components"

	// CodeUnsupportedAlgorithm means the declared algorithm is not in the
	// registry.
	CodeUnsupportedAlgorithm ErrorCode = "unsupported_algorithm"

	// CodeAlgorithmNotAllowed means the declared algorithm is registered
	// but excluded by the verifier's allow-list.
	CodeAlgorithmNotAllowed ErrorCode = "algorithm_not_allowed"

	// CodeSignatureExpired means the signature is older than the maximum
	// accepted age or past its declared expiry.
	CodeSignatureExpired ErrorCode = "signature_expired"

	// CodeSignatureFuture means the signature claims a creation time too
	// far ahead of the server clock.
	CodeSignatureFuture ErrorCode = "signature_future"

	// CodeKeyNotFound means the key ID could not be resolved to a public
	// key.
	CodeKeyNotFound ErrorCode = "key_not_found"

	// CodeVerificationFailed means the cryptographic verification path
	// faulted, as opposed to returning a definite mismatch.
	CodeVerificationFailed ErrorCode = "verification_failed"

	// CodeConfigurationError means the verifier is not usable as
	// configured (no key resolver). This is a server-side fault, not an
	// authentication failure.
	CodeConfigurationError ErrorCode = "configuration_error"
)

// Message returns a human-readable description of the code, suitable for
// client-facing error bodies. It never exposes internal details.
func (c ErrorCode) Message() string {
	switch c {
	case CodeSignatureRequired:
		return "request signature required"
	case CodeInvalidSignature:
		return "request signature is invalid"
	case CodeMissingComponents:
		return "signature does not cover required components"
	case CodeUnsupportedAlgorithm:
		return "signature algorithm is not supported"
	case CodeAlgorithmNotAllowed:
		return "signature algorithm is not allowed"
	case CodeSignatureExpired:
		return "signature has expired"
	case CodeSignatureFuture:
		return "signature created timestamp is in the future"
	case CodeKeyNotFound:
		return "signing key could not be resolved"
	case CodeVerificationFailed:
		return "signature verification failed"
	case CodeConfigurationError:
		return "signature verification is not configured"
	default:
		return "signature verification failed"
	}
}

// VerificationResult is the outcome of one verification attempt.
// Verification is all-or-nothing: either Valid is true and the signature
// metadata is populated, or Valid is false and Error carries exactly one
// code.
type VerificationResult struct {
	Valid bool

	// Populated on success.
	KeyID      string
	Algorithm  string
	Components []string
	Created    int64

	// Populated on failure.
	Error ErrorCode

	// Missing lists the required components absent from the signature
	// when Error is CodeMissingComponents.
	Missing []string
}

// valid returns a successful result echoing the verified signature's
// parameters.
func valid(in SignatureInput) VerificationResult {
	return VerificationResult{
		Valid:      true,
		KeyID:      in.KeyID,
		Algorithm:  in.Algorithm,
		Components: in.Components,
		Created:    in.Created,
	}
}

// invalid returns a failed result with the given code.
func invalid(code ErrorCode) VerificationResult {
	return VerificationResult{Error: code}
}

// SignatureInfo is the request-scoped record of a successful verification,
// attached to the request context for downstream handlers. It is read-only
// after creation.
type SignatureInfo struct {
	KeyID      string
	Algorithm  string
	Components []string
	Created    int64
}

// Info converts a successful result into its context-attachable form.
func (r VerificationResult) Info() SignatureInfo {
	return SignatureInfo{
		KeyID:      r.KeyID,
		Algorithm:  r.Algorithm,
		Components: r.Components,
		Created:    r.Created,
	}
}
