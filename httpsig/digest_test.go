package httpsig

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentDigest(t *testing.T) {
	t.Run("sha-256", func(t *testing.T) {
		// Value from RFC 9530 section 2 for {"hello": "world"}.
		digest, err := ContentDigest([]byte(`{"hello": "world"}`), DigestSHA256)
		require.NoError(t, err)

		assert.Equal(t, "sha-256=:X48E9qOokqqrvdts8nOJRJN3OWDUoyWxBf7kbu9DBPE=:", digest)
	})

	t.Run("sha-512", func(t *testing.T) {
		digest, err := ContentDigest([]byte(`{"hello": "world"}`), DigestSHA512)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(digest, "sha-512=:"), digest)
		assert.True(t, strings.HasSuffix(digest, ":"), digest)
	})

	t.Run("empty body", func(t *testing.T) {
		digest, err := ContentDigest(nil, DigestSHA256)
		require.NoError(t, err)

		// SHA-256 of the empty string.
		assert.Equal(t, "sha-256=:47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU=:", digest)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := ContentDigest([]byte("body"), "md5")
		assert.ErrorIs(t, err, ErrUnsupportedDigest)
	})
}

func TestVerifyContentDigest(t *testing.T) {
	newRequest := func(body, digest string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "https://api.example.com/orders", bytes.NewReader([]byte(body)))
		if digest != "" {
			req.Header.Set("Content-Digest", digest)
		}

		return req
	}

	t.Run("valid digest", func(t *testing.T) {
		body := `{"hello": "world"}`

		digest, err := ContentDigest([]byte(body), DigestSHA256)
		require.NoError(t, err)

		assert.NoError(t, VerifyContentDigest(newRequest(body, digest)))
	})

	t.Run("valid sha-512 digest", func(t *testing.T) {
		body := "payload"

		digest, err := ContentDigest([]byte(body), DigestSHA512)
		require.NoError(t, err)

		assert.NoError(t, VerifyContentDigest(newRequest(body, digest)))
	})

	t.Run("body restored after verification", func(t *testing.T) {
		body := `{"hello": "world"}`

		digest, err := ContentDigest([]byte(body), DigestSHA256)
		require.NoError(t, err)

		req := newRequest(body, digest)
		require.NoError(t, VerifyContentDigest(req))

		restored, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.Equal(t, body, string(restored))
	})

	t.Run("mismatch", func(t *testing.T) {
		digest, err := ContentDigest([]byte("original"), DigestSHA256)
		require.NoError(t, err)

		err = VerifyContentDigest(newRequest("tampered", digest))
		assert.ErrorIs(t, err, ErrDigestMismatch)
	})

	t.Run("missing header", func(t *testing.T) {
		err := VerifyContentDigest(newRequest("body", ""))
		assert.ErrorIs(t, err, ErrDigestNotFound)
	})

	t.Run("no recognized algorithm", func(t *testing.T) {
		err := VerifyContentDigest(newRequest("body", "md5=:aGFzaA==:"))
		assert.ErrorIs(t, err, ErrUnsupportedDigest)
	})

	t.Run("first recognized entry wins", func(t *testing.T) {
		body := "payload"

		digest, err := ContentDigest([]byte(body), DigestSHA256)
		require.NoError(t, err)

		header := "md5=:aGFzaA==:, " + digest
		assert.NoError(t, VerifyContentDigest(newRequest(body, header)))
	})

	t.Run("invalid base64", func(t *testing.T) {
		err := VerifyContentDigest(newRequest("body", "sha-256=:!!!:"))
		assert.ErrorIs(t, err, ErrDigestMismatch)
	})
}
