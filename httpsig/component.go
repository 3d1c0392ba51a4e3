package httpsig

import (
	"net/http"
	"net/url"
	"strings"
)

// Derived component identifiers per RFC 9421 Section 2.2.
const (
	ComponentMethod    = "@method"
	ComponentTargetURI = "@target-uri"
	ComponentAuthority = "@authority"
	ComponentScheme    = "@scheme"
	ComponentPath      = "@path"
	ComponentQuery     = "@query"
)

// componentSource maps a component identifier to its canonical value.
// The second return value reports whether the component is defined for
// the message; undefined components are omitted from the signature base.
type componentSource func(id string) (string, bool)

// ComponentValue extracts the canonical value of a covered component from
// an inbound HTTP request per RFC 9421 Section 2.
//
// Derived components start with "@". Header field names are matched
// case-insensitively and multi-value headers are joined with ", ".
func ComponentValue(r *http.Request, id string) (string, bool) {
	return requestComponents(r)(id)
}

// requestComponents returns the component source for an inbound request.
func requestComponents(r *http.Request) componentSource {
	return func(id string) (string, bool) {
		if strings.HasPrefix(id, "@") {
			return derivedRequestValue(id, r)
		}

		return headerValue(id, r.Header, r.Host)
	}
}

// descriptionComponents returns the component source for an outbound
// request description: a method, a parsed target URL and a header map.
// It applies the same canonicalization rules as the inbound path so that
// signing and verification produce byte-identical signature bases.
func descriptionComponents(method string, u *url.URL, header http.Header) componentSource {
	return func(id string) (string, bool) {
		if strings.HasPrefix(id, "@") {
			return derivedURLValue(id, method, u)
		}

		return headerValue(id, header, u.Host)
	}
}

// derivedRequestValue extracts a derived component from an inbound request
// per RFC 9421 Section 2.2.
func derivedRequestValue(id string, r *http.Request) (string, bool) {
	switch id {
	case ComponentMethod:
		return strings.ToUpper(r.Method), true

	case ComponentAuthority:
		return requestAuthority(r), true

	case ComponentScheme:
		return requestScheme(r), true

	case ComponentPath:
		return canonicalPath(r.URL), true

	case ComponentQuery:
		// An absent query string still yields "?", per Section 2.2.7.
		return "?" + r.URL.RawQuery, true

	case ComponentTargetURI:
		return requestScheme(r) + "://" + requestAuthority(r) + canonicalPath(r.URL) + rawQuerySuffix(r.URL), true

	default:
		return "", false
	}
}

// derivedURLValue extracts a derived component from an outbound request
// description.
func derivedURLValue(id, method string, u *url.URL) (string, bool) {
	switch id {
	case ComponentMethod:
		return strings.ToUpper(method), true

	case ComponentAuthority:
		return strings.ToLower(u.Host), true

	case ComponentScheme:
		return strings.ToLower(u.Scheme), true

	case ComponentPath:
		return canonicalPath(u), true

	case ComponentQuery:
		return "?" + u.RawQuery, true

	case ComponentTargetURI:
		return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + canonicalPath(u) + rawQuerySuffix(u), true

	default:
		return "", false
	}
}

// headerValue extracts a header field value per RFC 9421 Section 2.1.
// Multiple values for the same field are joined with ", ".
//
// The "host" field is special-cased because net/http carries it outside
// the header map.
func headerValue(id string, header http.Header, host string) (string, bool) {
	values := header[http.CanonicalHeaderKey(id)]

	if len(values) == 0 && strings.EqualFold(id, "host") && host != "" {
		return host, true
	}

	if len(values) == 0 {
		return "", false
	}

	return strings.Join(values, ", "), true
}

// requestAuthority returns the authority component (host[:port]) of an
// inbound request.
func requestAuthority(r *http.Request) string {
	if r.Host != "" {
		return strings.ToLower(r.Host)
	}

	if r.URL != nil && r.URL.Host != "" {
		return strings.ToLower(r.URL.Host)
	}

	return ""
}

// requestScheme returns the scheme of an inbound request (http or https).
func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}

	if r.URL != nil && r.URL.Scheme != "" {
		return strings.ToLower(r.URL.Scheme)
	}

	return "http"
}

// canonicalPath returns the raw path portion of the target, defaulting to
// "/" when empty.
func canonicalPath(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		return "/"
	}

	return path
}

// rawQuerySuffix returns "?<query>" when a query string is present and ""
// otherwise. Unlike the @query component, @target-uri carries no "?" for
// an absent query.
func rawQuerySuffix(u *url.URL) string {
	if u.RawQuery == "" {
		return ""
	}

	return "?" + u.RawQuery
}
