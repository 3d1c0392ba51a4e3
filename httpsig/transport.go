package httpsig

import (
	"bytes"
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that signs outgoing requests using
// HTTP Message Signatures (RFC 9421).
//
// Use NewTransport to create a Transport with a configured
// *http.Transport for proxy, TLS and timeout settings.
type Transport struct {
	base   http.RoundTripper
	signer *Signer
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request with signer. When base is nil, a clone of
// http.DefaultTransport is used, giving an independent connection pool
// with default proxy, TLS and timeout settings.
func NewTransport(base *http.Transport, signer *Signer) (*Transport, error) {
	if signer == nil {
		return nil, ErrNoSigner
	}

	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   rt,
		signer: signer,
	}, nil
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation; when
// GetBody is available, the clone receives its own body copy so reading
// it for Content-Digest does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	var body []byte
	if req.Body != nil {
		reader := req.Body

		if req.GetBody != nil {
			var err error
			reader, err = req.GetBody()
			if err != nil {
				return nil, err
			}
		}

		var err error
		body, err = io.ReadAll(reader)
		if err != nil {
			return nil, err
		}

		reader.Close()

		// The clone shares the original body reader; hand it the bytes
		// just read so the upstream transport still sees a full body.
		clone.Body = io.NopCloser(bytes.NewReader(body))
		clone.ContentLength = int64(len(body))
	}

	headers, err := t.signer.Sign(Request{
		Method: clone.Method,
		URL:    clone.URL.String(),
		Header: clone.Header,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	clone.Header = headers

	return t.base.RoundTrip(clone)
}
