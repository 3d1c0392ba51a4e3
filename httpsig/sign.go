package httpsig

import (
	"crypto"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/http/httpguts"
)

// signatureLabel is the dictionary key under which a Signer publishes its
// signature. A Signer emits exactly one signature per call.
const signatureLabel = "sig1"

// defaultCoveredComponents are signed when SignerConfig.Components is
// empty.
var defaultCoveredComponents = []string{ComponentMethod, ComponentTargetURI, ComponentAuthority}

// Request describes an outgoing request to be signed.
type Request struct {
	// Method is the HTTP method.
	Method string

	// URL is the absolute target URL.
	URL string

	// Header carries the request headers. May be nil.
	Header http.Header

	// Body is the request body, used for Content-Digest when the
	// "content-digest" component is covered. May be nil.
	Body []byte
}

// SignerConfig configures a Signer. All fields are bound at construction;
// a Signer never changes after NewSigner returns.
type SignerConfig struct {
	// KeyID is the key identifier published in signature parameters.
	// Required.
	KeyID string

	// Algorithm names the signature algorithm. Required, and must be
	// present in the registry.
	Algorithm string

	// Key is the private key material: a PEM string, PEM bytes, or an
	// already-imported crypto private key. Required.
	Key any

	// Components lists the component identifiers to cover. Defaults to
	// [ComponentMethod, ComponentTargetURI, ComponentAuthority].
	Components []string

	// Registry supplies the known algorithms. Defaults to NewRegistry().
	Registry *Registry

	// Nonce, when true, adds a fresh random nonce to every signature.
	Nonce bool

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Signer produces Signature-Input and Signature headers (and, when the
// body is covered, Content-Digest) for outgoing requests. It is immutable
// and safe for concurrent use; each Sign call gets its own created
// timestamp.
type Signer struct {
	keyID      string
	algorithm  Algorithm
	key        crypto.PrivateKey
	components []string
	nonce      bool
	now        func() time.Time
}

// NewSigner creates a Signer from the given configuration. PEM key
// material is imported once, up front.
func NewSigner(cfg SignerConfig) (*Signer, error) {
	if cfg.KeyID == "" {
		return nil, fmt.Errorf("%w: key id must not be empty", ErrInvalidKey)
	}

	registry := cfg.Registry
	if registry == nil {
		registry = NewRegistry()
	}

	alg, ok := registry.Get(cfg.Algorithm)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}

	key, err := importPrivateKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	components := cfg.Components
	if len(components) == 0 {
		components = defaultCoveredComponents
	}

	for _, id := range components {
		if err := validateComponentID(id); err != nil {
			return nil, err
		}
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Signer{
		keyID:      cfg.KeyID,
		algorithm:  alg,
		key:        key,
		components: slices.Clone(components),
		nonce:      cfg.Nonce,
		now:        now,
	}, nil
}

// KeyID returns the bound key identifier.
func (s *Signer) KeyID() string { return s.keyID }

// Algorithm returns the bound algorithm name.
func (s *Signer) Algorithm() string { return s.algorithm.Name() }

// Components returns the bound covered component list.
func (s *Signer) Components() []string { return slices.Clone(s.components) }

// Sign signs the request description and returns its headers merged with
// Signature-Input, Signature and, when applicable, Content-Digest. The
// input header map is not mutated.
func (s *Signer) Sign(req Request) (http.Header, error) {
	target, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("httpsig: invalid request url: %w", err)
	}

	headers := make(http.Header, len(req.Header)+3)
	for name, values := range req.Header {
		headers[name] = slices.Clone(values)
	}

	if slices.Contains(s.components, "content-digest") && len(req.Body) > 0 {
		digest, err := ContentDigest(req.Body, DigestSHA256)
		if err != nil {
			return nil, err
		}

		headers.Set("Content-Digest", digest)
	}

	params := signatureParams{
		components: s.components,
		keyID:      s.keyID,
		alg:        s.algorithm.Name(),
		created:    s.now().Unix(),
	}

	if s.nonce {
		params.nonce = uuid.NewString()
	}

	base := buildSignatureBase(descriptionComponents(req.Method, target, headers), params)

	signature, err := s.algorithm.Sign(s.key, base)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	encoded := base64.StdEncoding.EncodeToString(signature)

	headers.Set("Signature-Input", signatureLabel+"="+serializeSignatureParams(params))
	headers.Set("Signature", signatureLabel+"=:"+encoded+":")

	return headers, nil
}

// validateComponentID rejects component identifiers that are neither
// known derived components nor valid header field names.
func validateComponentID(id string) error {
	if strings.HasPrefix(id, "@") {
		switch id {
		case ComponentMethod, ComponentTargetURI, ComponentAuthority, ComponentScheme, ComponentPath, ComponentQuery:
			return nil
		default:
			return fmt.Errorf("%w: %s", ErrInvalidComponent, id)
		}
	}

	if !httpguts.ValidHeaderFieldName(id) {
		return fmt.Errorf("%w: %q is not a valid header field name", ErrInvalidComponent, id)
	}

	return nil
}
