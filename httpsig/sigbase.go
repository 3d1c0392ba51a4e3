package httpsig

import (
	"fmt"
	"strconv"
	"strings"
)

// signatureParams holds the parameters that appear in the
// @signature-params component of the signature base. Timestamps are Unix
// seconds; zero means absent.
type signatureParams struct {
	components []string
	keyID      string
	alg        string
	created    int64
	expires    int64
	nonce      string
}

// buildSignatureBase constructs the signature base string per RFC 9421
// Section 2.5. Each resolvable covered component produces one line
// "<component-id>": <value>\n, in declared order with duplicates
// preserved, and the final line is "@signature-params": <params>.
//
// Components whose value cannot be resolved are omitted from the base
// rather than failing construction. Callers that rely on a component
// being covered must check for it explicitly (see
// VerifierConfig.RequiredComponents).
func buildSignatureBase(src componentSource, params signatureParams) []byte {
	var base strings.Builder

	for _, id := range params.components {
		val, ok := src(id)
		if !ok {
			continue
		}

		fmt.Fprintf(&base, "%q: %s\n", id, val)
	}

	fmt.Fprintf(&base, "\"@signature-params\": %s", serializeSignatureParams(params))

	return []byte(base.String())
}

// serializeSignatureParams produces the inner-list representation of the
// signature parameters per RFC 9421 Section 2.3 and RFC 8941 Section 3.1.1.
//
// The parameter order is fixed: keyid, alg, created, expires, nonce.
// Verification re-serializes parsed parameters through this same function,
// so both sides of the wire must agree on the order.
func serializeSignatureParams(params signatureParams) string {
	var b strings.Builder

	b.WriteByte('(')
	for i, id := range params.components {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(strconv.Quote(id))
	}
	b.WriteByte(')')

	b.WriteString(";keyid=")
	b.WriteString(quoteRFC8941(params.keyID))
	b.WriteString(";alg=")
	b.WriteString(quoteRFC8941(params.alg))

	if params.created != 0 {
		fmt.Fprintf(&b, ";created=%d", params.created)
	}

	if params.expires != 0 {
		fmt.Fprintf(&b, ";expires=%d", params.expires)
	}

	if params.nonce != "" {
		b.WriteString(";nonce=")
		b.WriteString(quoteRFC8941(params.nonce))
	}

	return b.String()
}

// quoteRFC8941 produces an RFC 8941 quoted-string. Only backslash and
// double-quote are escaped (Section 3.3.3); no other escape sequences
// are permitted.
func quoteRFC8941(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' || ch == '"' {
			b.WriteByte('\\')
		}

		b.WriteByte(ch)
	}

	b.WriteByte('"')

	return b.String()
}
