package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/sigward/httpsig"
	"github.com/vitalvas/sigward/jwks"
)

// Validation errors.
var (
	// ErrMissingJWKSURL is returned when a verify section has no
	// jwks_url. Verification cannot run without a key source.
	ErrMissingJWKSURL = errors.New("config: verify.jwks_url is required")

	// ErrMissingKeyID is returned when a sign section has no key_id.
	ErrMissingKeyID = errors.New("config: sign.key_id is required")

	// ErrMissingAlgorithm is returned when a sign section has no
	// algorithm.
	ErrMissingAlgorithm = errors.New("config: sign.algorithm is required")

	// ErrMissingKey is returned when a sign section has neither
	// private_key nor private_key_file.
	ErrMissingKey = errors.New("config: one of sign.private_key or sign.private_key_file is required")
)

// defaultMaxAgeSeconds is applied to verify.max_age when unset.
const defaultMaxAgeSeconds = 300

// Config is the top-level configuration document. Either section may be
// absent when a process only signs or only verifies.
type Config struct {
	Verify *VerifyConfig `yaml:"verify"`
	Sign   *SignConfig   `yaml:"sign"`
}

// VerifyConfig configures inbound signature verification.
type VerifyConfig struct {
	// JWKSURL is the JSON Web Key Set endpoint public keys are resolved
	// from. Required.
	JWKSURL string `yaml:"jwks_url"`

	// MaxAge is the maximum accepted signature age in seconds.
	// Defaults to 300.
	MaxAge int `yaml:"max_age"`

	// Algorithms restricts accepted algorithms. Empty accepts every
	// registered algorithm.
	Algorithms []string `yaml:"algorithms"`

	// RequiredComponents lists components a signature must cover.
	// Defaults to "@method", "@target-uri" and "@authority".
	RequiredComponents []string `yaml:"required_components"`

	// Realm is the WWW-Authenticate protection realm. Defaults to "api".
	Realm string `yaml:"realm"`
}

// SignConfig configures outbound request signing.
type SignConfig struct {
	// KeyID identifies the signing key to verifiers. Required.
	KeyID string `yaml:"key_id"`

	// Algorithm names the signature algorithm. Required.
	Algorithm string `yaml:"algorithm"`

	// PrivateKey is inline PEM key material.
	PrivateKey string `yaml:"private_key"`

	// PrivateKeyFile is a path to PEM key material, used when PrivateKey
	// is empty.
	PrivateKeyFile string `yaml:"private_key_file"`

	// Components lists the covered components.
	Components []string `yaml:"components"`

	// Nonce adds a fresh random nonce to every signature.
	Nonce bool `yaml:"nonce"`
}

// Load reads, parses and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if cfg.Verify != nil {
		if cfg.Verify.JWKSURL == "" {
			return nil, ErrMissingJWKSURL
		}

		if cfg.Verify.MaxAge <= 0 {
			cfg.Verify.MaxAge = defaultMaxAgeSeconds
		}

		if cfg.Verify.Realm == "" {
			cfg.Verify.Realm = "api"
		}
	}

	if cfg.Sign != nil {
		switch {
		case cfg.Sign.KeyID == "":
			return nil, ErrMissingKeyID
		case cfg.Sign.Algorithm == "":
			return nil, ErrMissingAlgorithm
		case cfg.Sign.PrivateKey == "" && cfg.Sign.PrivateKeyFile == "":
			return nil, ErrMissingKey
		}
	}

	return &cfg, nil
}

// Build wires the verify section into a Verifier resolving keys through
// the given ResolverCache. Registry may be nil for the default registry.
func (v *VerifyConfig) Build(ctx context.Context, cache *jwks.ResolverCache, registry *httpsig.Registry) (*httpsig.Verifier, error) {
	resolver, err := cache.Resolver(ctx, v.JWKSURL)
	if err != nil {
		return nil, err
	}

	return httpsig.NewVerifier(httpsig.VerifierConfig{
		Resolver:           resolver,
		Registry:           registry,
		MaxAge:             time.Duration(v.MaxAge) * time.Second,
		Algorithms:         v.Algorithms,
		RequiredComponents: v.RequiredComponents,
	}), nil
}

// Build wires the sign section into a Signer, reading key material from
// disk when configured by path. Registry may be nil for the default
// registry.
func (s *SignConfig) Build(registry *httpsig.Registry) (*httpsig.Signer, error) {
	key := s.PrivateKey
	if key == "" {
		data, err := os.ReadFile(s.PrivateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("config: read key %s: %w", s.PrivateKeyFile, err)
		}

		key = string(data)
	}

	return httpsig.NewSigner(httpsig.SignerConfig{
		KeyID:      s.KeyID,
		Algorithm:  s.Algorithm,
		Key:        key,
		Components: s.Components,
		Registry:   registry,
		Nonce:      s.Nonce,
	})
}
