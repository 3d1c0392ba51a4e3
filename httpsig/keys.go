package httpsig

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// ParsePrivateKeyPEM parses a PEM-encoded private key. PKCS#8, PKCS#1
// (RSA) and SEC 1 (EC) encodings are accepted.
func ParsePrivateKeyPEM(data []byte) (crypto.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParseECPrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	return nil, fmt.Errorf("%w: unsupported private key encoding", ErrInvalidKey)
}

// ParsePublicKeyPEM parses a PEM-encoded public key. PKIX and PKCS#1
// (RSA) encodings are accepted.
func ParsePublicKeyPEM(data []byte) (crypto.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		return key, nil
	}

	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}

	return nil, fmt.Errorf("%w: unsupported public key encoding", ErrInvalidKey)
}

// importPrivateKey accepts private key material as a PEM string, PEM bytes
// or an already-imported crypto key handle.
func importPrivateKey(key any) (crypto.PrivateKey, error) {
	switch k := key.(type) {
	case nil:
		return nil, fmt.Errorf("%w: key must not be nil", ErrInvalidKey)

	case string:
		return ParsePrivateKeyPEM([]byte(k))

	case []byte:
		return ParsePrivateKeyPEM(k)

	default:
		return k, nil
	}
}
