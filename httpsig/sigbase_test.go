package httpsig

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeSignatureParams(t *testing.T) {
	t.Run("mandatory parameters only", func(t *testing.T) {
		got := serializeSignatureParams(signatureParams{
			components: []string{"@method", "@target-uri"},
			keyID:      "client-key-1",
			alg:        "rsa-pss-sha512",
		})

		assert.Equal(t, `("@method" "@target-uri");keyid="client-key-1";alg="rsa-pss-sha512"`, got)
	})

	t.Run("full parameter set keeps fixed order", func(t *testing.T) {
		got := serializeSignatureParams(signatureParams{
			components: []string{"@method"},
			keyID:      "k1",
			alg:        "ed25519",
			created:    1704067200,
			expires:    1704067500,
			nonce:      "abc",
		})

		assert.Equal(t, `("@method");keyid="k1";alg="ed25519";created=1704067200;expires=1704067500;nonce="abc"`, got)
	})

	t.Run("empty component list", func(t *testing.T) {
		got := serializeSignatureParams(signatureParams{
			keyID: "k1",
			alg:   "ed25519",
		})

		assert.Equal(t, `();keyid="k1";alg="ed25519"`, got)
	})

	t.Run("quoted values are escaped", func(t *testing.T) {
		got := serializeSignatureParams(signatureParams{
			keyID: `k"1`,
			alg:   "ed25519",
		})

		assert.Contains(t, got, `keyid="k\"1"`)
	})
}

func TestBuildSignatureBase(t *testing.T) {
	params := signatureParams{
		components: []string{"@method", "@path", "content-type"},
		keyID:      "client-key-1",
		alg:        "rsa-pss-sha512",
		created:    1704067200,
	}

	t.Run("inbound request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "https://example.com/api/data", nil)
		req.Header.Set("Content-Type", "application/json")

		base := string(buildSignatureBase(requestComponents(req), params))

		lines := strings.Split(base, "\n")
		require.Len(t, lines, 4)
		assert.Equal(t, `"@method": POST`, lines[0])
		assert.Equal(t, `"@path": /api/data`, lines[1])
		assert.Equal(t, `"content-type": application/json`, lines[2])
		assert.Equal(t, `"@signature-params": ("@method" "@path" "content-type");keyid="client-key-1";alg="rsa-pss-sha512";created=1704067200`, lines[3])
	})

	t.Run("unresolvable component is skipped", func(t *testing.T) {
		req := httptest.NewRequest("POST", "https://example.com/api/data", nil)

		base := string(buildSignatureBase(requestComponents(req), signatureParams{
			components: []string{"@method", "x-missing"},
			keyID:      "k1",
			alg:        "ed25519",
		}))

		assert.NotContains(t, base, "x-missing\": ")
		// The skipped component stays in the declared list.
		assert.Contains(t, base, `("@method" "x-missing")`)
	})

	t.Run("duplicate components produce duplicate lines", func(t *testing.T) {
		req := httptest.NewRequest("GET", "https://example.com/", nil)

		base := string(buildSignatureBase(requestComponents(req), signatureParams{
			components: []string{"@method", "@method"},
			keyID:      "k1",
			alg:        "ed25519",
		}))

		assert.Equal(t, 2, strings.Count(base, `"@method": GET`))
	})

	t.Run("inbound and outbound bases are byte-identical", func(t *testing.T) {
		req := httptest.NewRequest("POST", "https://example.com/api/data?x=1", nil)
		req.Header.Set("Content-Type", "application/json")

		target, err := url.Parse("https://example.com/api/data?x=1")
		require.NoError(t, err)

		outHeaders := req.Header.Clone()

		full := signatureParams{
			components: []string{"@method", "@target-uri", "@authority", "@scheme", "@path", "@query", "content-type"},
			keyID:      "client-key-1",
			alg:        "rsa-pss-sha512",
			created:    1704067200,
		}

		inbound := buildSignatureBase(requestComponents(req), full)
		outbound := buildSignatureBase(descriptionComponents("POST", target, outHeaders), full)

		assert.Equal(t, inbound, outbound)
	})
}
