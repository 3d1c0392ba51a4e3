package httpsig

import (
	"bytes"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DigestAlgorithm identifies the hash algorithm for Content-Digest
// per RFC 9530.
type DigestAlgorithm string

const (
	// DigestSHA256 uses SHA-256 for content digest.
	DigestSHA256 DigestAlgorithm = "sha-256"

	// DigestSHA512 uses SHA-512 for content digest.
	DigestSHA512 DigestAlgorithm = "sha-512"
)

// ContentDigest computes the Content-Digest header value for body using
// the given algorithm, in the form "sha-256=:<base64>:".
func ContentDigest(body []byte, alg DigestAlgorithm) (string, error) {
	digest, err := computeDigest(body, alg)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s=:%s:", alg, base64.StdEncoding.EncodeToString(digest)), nil
}

// VerifyContentDigest verifies the Content-Digest header against the
// request body per RFC 9530. The header may carry multiple digest values;
// the first recognized algorithm is verified. The body is restored so
// downstream handlers can read it again.
func VerifyContentDigest(r *http.Request) error {
	header := r.Header.Get("Content-Digest")
	if header == "" {
		return ErrDigestNotFound
	}

	body, err := readAndRestoreBody(r)
	if err != nil {
		return err
	}

	for entry := range strings.SplitSeq(header, ",") {
		alg, encoded, ok := parseDigestEntry(strings.TrimSpace(entry))
		if !ok {
			continue
		}

		expected, err := computeDigest(body, alg)
		if err != nil {
			return err
		}

		actual, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("%w: invalid base64 in digest", ErrDigestMismatch)
		}

		if !bytes.Equal(expected, actual) {
			return ErrDigestMismatch
		}

		return nil
	}

	return ErrUnsupportedDigest
}

// parseDigestEntry parses a single "alg=:base64:" entry from the
// Content-Digest header.
func parseDigestEntry(entry string) (DigestAlgorithm, string, bool) {
	algStr, value, ok := strings.Cut(entry, "=")
	if !ok {
		return "", "", false
	}

	alg := DigestAlgorithm(strings.TrimSpace(algStr))
	value = strings.TrimSpace(value)

	if len(value) < 2 || value[0] != ':' || value[len(value)-1] != ':' {
		return "", "", false
	}

	switch alg {
	case DigestSHA256, DigestSHA512:
		return alg, value[1 : len(value)-1], true
	default:
		return "", "", false
	}
}

// computeDigest hashes data with the given algorithm.
func computeDigest(data []byte, alg DigestAlgorithm) ([]byte, error) {
	switch alg {
	case DigestSHA256:
		h := sha256.Sum256(data)
		return h[:], nil
	case DigestSHA512:
		h := sha512.Sum512(data)
		return h[:], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDigest, alg)
	}
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be consumed again downstream.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
