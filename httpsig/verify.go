package httpsig

import (
	"context"
	"crypto"
	"net/http"
	"slices"
	"time"
)

// DefaultMaxAge is the maximum accepted signature age when
// VerifierConfig.MaxAge is zero.
const DefaultMaxAge = 5 * time.Minute

// maxClockSkew is how far in the future a created timestamp may lie
// before the signature is rejected as not yet valid.
const maxClockSkew = 60 * time.Second

// DefaultRequiredComponents are the components a signature must cover when
// VerifierConfig.RequiredComponents is empty.
var DefaultRequiredComponents = []string{ComponentMethod, ComponentTargetURI, ComponentAuthority}

// KeyResolver resolves a key ID and algorithm name to a public key.
// Implementations must return an error for unknown keys so the verifier
// can classify the failure; the jwks package provides a JWKS-backed
// implementation.
type KeyResolver interface {
	ResolveKey(ctx context.Context, keyID, algorithm string) (crypto.PublicKey, error)
}

// VerifierConfig configures a Verifier.
type VerifierConfig struct {
	// Resolver looks up public keys. A verifier without a resolver
	// reports CodeConfigurationError for every request.
	Resolver KeyResolver

	// Registry supplies the known algorithms. Defaults to NewRegistry().
	Registry *Registry

	// MaxAge is the maximum accepted signature age, applied when the
	// signature carries a created parameter. Defaults to DefaultMaxAge.
	MaxAge time.Duration

	// Algorithms is an allow-list of algorithm names. Empty means every
	// registered algorithm is acceptable.
	Algorithms []string

	// RequiredComponents lists component identifiers the signature must
	// cover. Defaults to DefaultRequiredComponents.
	RequiredComponents []string

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Verifier checks HTTP message signatures on inbound requests. It is
// immutable after construction and safe for concurrent use.
type Verifier struct {
	resolver   KeyResolver
	registry   *Registry
	maxAge     time.Duration
	algorithms []string
	required   []string
	now        func() time.Time
}

// NewVerifier creates a Verifier, applying defaults for unset fields.
func NewVerifier(cfg VerifierConfig) *Verifier {
	v := &Verifier{
		resolver:   cfg.Resolver,
		registry:   cfg.Registry,
		maxAge:     cfg.MaxAge,
		algorithms: cfg.Algorithms,
		required:   cfg.RequiredComponents,
		now:        cfg.Now,
	}

	if v.registry == nil {
		v.registry = NewRegistry()
	}

	if v.maxAge <= 0 {
		v.maxAge = DefaultMaxAge
	}

	if len(v.required) == 0 {
		v.required = slices.Clone(DefaultRequiredComponents)
	}

	if v.now == nil {
		v.now = time.Now
	}

	return v
}

// RequiredComponents returns the components every accepted signature must
// cover.
func (v *Verifier) RequiredComponents() []string {
	return slices.Clone(v.required)
}

// VerifyRequest verifies the signature on an inbound request and returns
// the outcome as data; it never fails with a Go error.
//
// When the request carries several signatures, only the first entry of
// the Signature-Input header (and the Signature entry sharing its label)
// is checked. Verifying all present signatures is deliberately not
// attempted.
func (v *Verifier) VerifyRequest(ctx context.Context, r *http.Request) VerificationResult {
	sigInputHeader := r.Header.Get("Signature-Input")
	sigHeader := r.Header.Get("Signature")

	if sigInputHeader == "" || sigHeader == "" {
		return invalid(CodeSignatureRequired)
	}

	inputs := ParseSignatureInput(sigInputHeader)
	if len(inputs) == 0 {
		return invalid(CodeInvalidSignature)
	}

	input := inputs[0]

	signature, ok := ParseSignature(sigHeader)[input.Label]
	if !ok {
		return invalid(CodeInvalidSignature)
	}

	if missing := missingComponents(v.required, input.Components); len(missing) > 0 {
		result := invalid(CodeMissingComponents)
		result.Missing = missing

		return result
	}

	return v.verify(ctx, requestComponents(r), input, signature)
}

// verify walks the verification checks in order, stopping at the first
// failure. The order is load-bearing: it determines which code a request
// failing several checks reports.
func (v *Verifier) verify(ctx context.Context, src componentSource, input SignatureInput, signature []byte) VerificationResult {
	alg, ok := v.registry.Get(input.Algorithm)
	if !ok {
		return invalid(CodeUnsupportedAlgorithm)
	}

	if len(v.algorithms) > 0 && !slices.Contains(v.algorithms, input.Algorithm) {
		return invalid(CodeAlgorithmNotAllowed)
	}

	now := v.now()

	if input.Created != 0 {
		age := now.Sub(time.Unix(input.Created, 0))

		if age > v.maxAge {
			return invalid(CodeSignatureExpired)
		}

		if age < -maxClockSkew {
			return invalid(CodeSignatureFuture)
		}
	}

	if input.Expires != 0 && now.After(time.Unix(input.Expires, 0)) {
		return invalid(CodeSignatureExpired)
	}

	if v.resolver == nil {
		return invalid(CodeConfigurationError)
	}

	key, err := v.resolver.ResolveKey(ctx, input.KeyID, input.Algorithm)
	if err != nil {
		return invalid(CodeKeyNotFound)
	}

	base := buildSignatureBase(src, signatureParams{
		components: input.Components,
		keyID:      input.KeyID,
		alg:        input.Algorithm,
		created:    input.Created,
		expires:    input.Expires,
		nonce:      input.Nonce,
	})

	ok, faulted := safeVerify(alg, key, signature, base)
	if faulted {
		return invalid(CodeVerificationFailed)
	}

	if !ok {
		return invalid(CodeInvalidSignature)
	}

	return valid(input)
}

// safeVerify runs the algorithm's Verify, converting a panic in the
// crypto path into a fault distinct from a definite mismatch. Registered
// algorithms are required not to panic; this guards injected ones.
func safeVerify(alg Algorithm, key crypto.PublicKey, signature, base []byte) (ok, faulted bool) {
	defer func() {
		if recover() != nil {
			ok = false
			faulted = true
		}
	}()

	return alg.Verify(key, signature, base), false
}

// missingComponents returns the required identifiers absent from covered,
// in required order.
func missingComponents(required, covered []string) []string {
	var missing []string

	for _, id := range required {
		if !slices.Contains(covered, id) {
			missing = append(missing, id)
		}
	}

	return missing
}
