package httpsig

import (
	"bytes"
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport(t *testing.T) {
	t.Run("nil signer", func(t *testing.T) {
		_, err := NewTransport(nil, nil)
		assert.ErrorIs(t, err, ErrNoSigner)
	})

	t.Run("nil base uses default clone", func(t *testing.T) {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		signer, err := NewSigner(SignerConfig{
			KeyID:     "k1",
			Algorithm: AlgorithmEd25519,
			Key:       priv,
		})
		require.NoError(t, err)

		transport, err := NewTransport(nil, signer)
		require.NoError(t, err)
		assert.NotNil(t, transport.base)
		assert.NotSame(t, http.DefaultTransport, transport.base)
	})
}

func TestTransportRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	verifier := NewVerifier(VerifierConfig{
		Resolver: &staticResolver{keys: map[string]crypto.PublicKey{"client-key-1": pub}},
	})

	newClient := func(components []string) *http.Client {
		signer, err := NewSigner(SignerConfig{
			KeyID:      "client-key-1",
			Algorithm:  AlgorithmEd25519,
			Key:        priv,
			Components: components,
		})
		require.NoError(t, err)

		transport, err := NewTransport(nil, signer)
		require.NoError(t, err)

		return &http.Client{Transport: transport}
	}

	t.Run("signed request verifies end to end", func(t *testing.T) {
		var result VerificationResult

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result = verifier.VerifyRequest(r.Context(), r)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		resp, err := newClient(nil).Get(server.URL + "/orders?limit=10")
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.True(t, result.Valid, result.Error)
		assert.Equal(t, "client-key-1", result.KeyID)
	})

	t.Run("body reaches server intact with digest", func(t *testing.T) {
		var received []byte
		var digestErr error
		var result VerificationResult

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			digestErr = VerifyContentDigest(r)
			result = verifier.VerifyRequest(r.Context(), r)

			received, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		components := []string{ComponentMethod, ComponentTargetURI, ComponentAuthority, "content-digest"}
		payload := []byte(`{"hello": "world"}`)

		resp, err := newClient(components).Post(server.URL+"/orders", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()

		assert.NoError(t, digestErr)
		assert.True(t, result.Valid, result.Error)
		assert.Equal(t, payload, received)
	})

	t.Run("original request not mutated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		req, err := http.NewRequest(http.MethodGet, server.URL+"/orders", nil)
		require.NoError(t, err)

		resp, err := newClient(nil).Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Empty(t, req.Header.Get("Signature"))
		assert.Empty(t, req.Header.Get("Signature-Input"))
	})

	t.Run("tampered request fails verification", func(t *testing.T) {
		var result VerificationResult

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Method = http.MethodDelete
			result = verifier.VerifyRequest(r.Context(), r)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		resp, err := newClient(nil).Get(server.URL + "/orders")
		require.NoError(t, err)
		resp.Body.Close()

		assert.False(t, result.Valid)
		assert.Equal(t, CodeInvalidSignature, result.Error)
	})
}
