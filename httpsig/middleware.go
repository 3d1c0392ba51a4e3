package httpsig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// MiddlewareFunc wraps an http.Handler with additional behaviour.
type MiddlewareFunc func(next http.Handler) http.Handler

// MiddlewareConfig configures the server-side verification gate.
type MiddlewareConfig struct {
	// Verifier checks inbound signatures. Required.
	Verifier *Verifier

	// Realm is the protection realm sent in the WWW-Authenticate
	// challenge. Defaults to "api".
	Realm string

	// RequireContentDigest, when true, verifies the Content-Digest
	// header against the request body before checking the signature.
	RequireContentDigest bool
}

// errorBody is the JSON error payload sent on verification failure.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Middleware returns a MiddlewareFunc that verifies HTTP message
// signatures on incoming requests per RFC 9421.
//
// Authentication failures answer 401 with a WWW-Authenticate Signature
// challenge and a JSON body carrying the error code; server
// misconfiguration answers 500. On success a SignatureInfo is attached to
// the request context for downstream handlers.
//
// It returns ErrNoVerifier when no Verifier is configured.
func Middleware(cfg MiddlewareConfig) (MiddlewareFunc, error) {
	if cfg.Verifier == nil {
		return nil, ErrNoVerifier
	}

	realm := cfg.Realm
	if realm == "" {
		realm = "api"
	}

	verifier := cfg.Verifier
	requireDigest := cfg.RequireContentDigest

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requireDigest {
				if err := VerifyContentDigest(r); err != nil {
					challenge(w, realm, invalid(CodeInvalidSignature), nil)
					return
				}
			}

			result := verifier.VerifyRequest(r.Context(), r)
			if !result.Valid {
				challenge(w, realm, result, verifier.RequiredComponents())
				return
			}

			ctx := ContextWithSignatureInfo(r.Context(), result.Info())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}, nil
}

// challenge writes the failure response: a WWW-Authenticate Signature
// header and a generic JSON body. Internal details never reach the
// client.
func challenge(w http.ResponseWriter, realm string, result VerificationResult, required []string) {
	code := result.Error
	if code == "" {
		code = CodeVerificationFailed
	}

	var header strings.Builder
	fmt.Fprintf(&header, "Signature realm=%q", realm)

	if code != CodeConfigurationError {
		fmt.Fprintf(&header, ", error=%q", string(code))
	}

	// The challenge names the full required set when no signature was
	// presented at all, and only the gap when one was.
	switch code {
	case CodeSignatureRequired:
		if len(required) > 0 {
			fmt.Fprintf(&header, ", headers=%q", strings.Join(required, " "))
		}

	case CodeMissingComponents:
		if len(result.Missing) > 0 {
			fmt.Fprintf(&header, ", headers=%q", strings.Join(result.Missing, " "))
		}
	}

	status := http.StatusUnauthorized
	if code == CodeConfigurationError {
		status = http.StatusInternalServerError
	}

	w.Header().Set("WWW-Authenticate", header.String())
	responseJSON(w, status, errorBody{
		Error:   string(code),
		Message: code.Message(),
	})
}

// responseJSON encodes v as JSON and writes it with the given status
// code. If encoding fails, a plain 500 is written instead.
func responseJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
