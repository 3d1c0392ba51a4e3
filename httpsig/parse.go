package httpsig

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// SignatureInput is one signature's declared parameters, decoded from the
// Signature-Input header. Components preserves declaration order and
// duplicates. Created and Expires are Unix seconds; zero means absent.
type SignatureInput struct {
	Label      string
	Components []string
	KeyID      string
	Algorithm  string
	Created    int64
	Expires    int64
	Nonce      string
}

// ParseSignatureInput decodes a Signature-Input header value into its
// structured entries. Multiple comma-separated signatures are supported;
// commas inside component lists and quoted strings do not split entries.
//
// Segments that do not match label=(...), or that lack the mandatory
// keyid or alg parameters, are dropped silently. The parser never fails:
// malformed input yields fewer (possibly zero) entries, and the same
// header always yields the same result.
func ParseSignatureInput(header string) []SignatureInput {
	var inputs []SignatureInput

	for _, entry := range splitTopLevel(header, ',') {
		label, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}

		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)

		if label == "" || len(value) == 0 || value[0] != '(' {
			continue
		}

		closeParen := strings.IndexByte(value, ')')
		if closeParen < 0 {
			continue
		}

		input := SignatureInput{
			Label:      label,
			Components: quotedItems(value[1:closeParen]),
		}

		for _, part := range splitTopLevel(value[closeParen+1:], ';') {
			key, val, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}

			switch key {
			case "keyid":
				input.KeyID = unquote(val)

			case "alg":
				input.Algorithm = unquote(val)

			case "created":
				if ts, err := strconv.ParseInt(val, 10, 64); err == nil {
					input.Created = ts
				}

			case "expires":
				if ts, err := strconv.ParseInt(val, 10, 64); err == nil {
					input.Expires = ts
				}

			case "nonce":
				input.Nonce = unquote(val)
			}
		}

		if input.KeyID == "" || input.Algorithm == "" {
			continue
		}

		inputs = append(inputs, input)
	}

	return inputs
}

// ParseSignature decodes a Signature header value into raw signature bytes
// keyed by label. Each entry has the form label=:<base64>:. Entries with
// malformed framing or invalid base64 are skipped; the rest are returned.
func ParseSignature(header string) map[string][]byte {
	signatures := make(map[string][]byte)

	for _, entry := range splitTopLevel(header, ',') {
		label, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}

		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)

		if label == "" || len(value) < 2 || value[0] != ':' || value[len(value)-1] != ':' {
			continue
		}

		decoded, err := base64.StdEncoding.DecodeString(value[1 : len(value)-1])
		if err != nil {
			continue
		}

		signatures[label] = decoded
	}

	return signatures
}

// splitTopLevel splits s on delim at nesting depth zero: delimiters inside
// "..." quoted regions or (...) inner lists are not split points.
// Backslash-escaped quotes inside quoted strings are handled. Each part is
// trimmed of surrounding whitespace and empty parts are dropped.
func splitTopLevel(s string, delim byte) []string {
	var result []string
	var part strings.Builder

	inQuote := false
	depth := 0

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inQuote {
			if ch == '\\' && i+1 < len(s) {
				part.WriteByte(ch)
				i++
				part.WriteByte(s[i])

				continue
			}

			if ch == '"' {
				inQuote = false
			}

			part.WriteByte(ch)

			continue
		}

		switch ch {
		case '"':
			inQuote = true
			part.WriteByte(ch)

		case '(':
			depth++
			part.WriteByte(ch)

		case ')':
			if depth > 0 {
				depth--
			}
			part.WriteByte(ch)

		case delim:
			if depth > 0 {
				part.WriteByte(ch)
				continue
			}

			if p := strings.TrimSpace(part.String()); p != "" {
				result = append(result, p)
			}
			part.Reset()

		default:
			part.WriteByte(ch)
		}
	}

	if p := strings.TrimSpace(part.String()); p != "" {
		result = append(result, p)
	}

	return result
}

// quotedItems returns all double-quoted substrings of s, in order.
func quotedItems(s string) []string {
	var items []string

	for {
		open := strings.IndexByte(s, '"')
		if open < 0 {
			return items
		}

		end := strings.IndexByte(s[open+1:], '"')
		if end < 0 {
			return items
		}

		items = append(items, s[open+1:open+1+end])
		s = s[open+end+2:]
	}
}

// unquote removes surrounding double quotes and unescapes RFC 8941
// escape sequences (\\ and \").
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}

		b.WriteByte(s[i])
	}

	return b.String()
}
