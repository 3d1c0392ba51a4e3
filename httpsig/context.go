package httpsig

import "context"

type signatureInfoKey struct{}

// ContextWithSignatureInfo returns a context carrying the verification
// record of a signed request.
func ContextWithSignatureInfo(ctx context.Context, info SignatureInfo) context.Context {
	return context.WithValue(ctx, signatureInfoKey{}, info)
}

// SignatureInfoFromContext returns the verification record stored by the
// Middleware after a successful verification. The second return value is
// false when the request was not verified.
func SignatureInfoFromContext(ctx context.Context) (SignatureInfo, bool) {
	info, ok := ctx.Value(signatureInfoKey{}).(SignatureInfo)

	return info, ok
}
