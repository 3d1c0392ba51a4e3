package httpsig

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
)

// Minimum RSA key size in bits.
const minRSAKeyBits = 2048

// --- RSA-PSS SHA-512 ---

type rsaPSSSHA512 struct{}

func (rsaPSSSHA512) Name() string { return AlgorithmRSAPSSSHA512 }

func (rsaPSSSHA512) Sign(key crypto.PrivateKey, data []byte) ([]byte, error) {
	priv, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	digest := sha512.Sum512(data)

	return rsa.SignPSS(rand.Reader, priv, crypto.SHA512, digest[:], &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
}

func (rsaPSSSHA512) Verify(key crypto.PublicKey, signature, data []byte) bool {
	pub, ok := key.(*rsa.PublicKey)
	if !ok || pub == nil {
		return false
	}

	digest := sha512.Sum512(data)

	return rsa.VerifyPSS(pub, crypto.SHA512, digest[:], signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	}) == nil
}

// --- RSA v1.5 SHA-256 ---

type rsaV15SHA256 struct{}

func (rsaV15SHA256) Name() string { return AlgorithmRSAv15SHA256 }

func (rsaV15SHA256) Sign(key crypto.PrivateKey, data []byte) ([]byte, error) {
	priv, err := rsaPrivateKey(key)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(data)

	return rsa.SignPKCS1v15(rand.Reader, priv, crypto.SHA256, digest[:])
}

func (rsaV15SHA256) Verify(key crypto.PublicKey, signature, data []byte) bool {
	pub, ok := key.(*rsa.PublicKey)
	if !ok || pub == nil {
		return false
	}

	digest := sha256.Sum256(data)

	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest[:], signature) == nil
}

func rsaPrivateKey(key crypto.PrivateKey) (*rsa.PrivateKey, error) {
	priv, ok := key.(*rsa.PrivateKey)
	if !ok || priv == nil {
		return nil, fmt.Errorf("%w: rsa private key required", ErrInvalidKey)
	}

	if priv.N.BitLen() < minRSAKeyBits {
		return nil, fmt.Errorf("%w: rsa key must be at least %d bits", ErrInvalidKey, minRSAKeyBits)
	}

	return priv, nil
}

// --- Ed25519 ---

type ed25519Algorithm struct{}

func (ed25519Algorithm) Name() string { return AlgorithmEd25519 }

func (ed25519Algorithm) Sign(key crypto.PrivateKey, data []byte) ([]byte, error) {
	priv, ok := key.(ed25519.PrivateKey)
	if !ok || len(priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: ed25519 private key must be %d bytes", ErrInvalidKey, ed25519.PrivateKeySize)
	}

	return ed25519.Sign(priv, data), nil
}

func (ed25519Algorithm) Verify(key crypto.PublicKey, signature, data []byte) bool {
	pub, ok := key.(ed25519.PublicKey)
	if !ok || len(pub) != ed25519.PublicKeySize {
		return false
	}

	return ed25519.Verify(pub, data, signature)
}

// --- ECDSA P-256 SHA-256 ---

type ecdsaP256SHA256 struct{}

func (ecdsaP256SHA256) Name() string { return AlgorithmECDSAP256SHA256 }

func (ecdsaP256SHA256) Sign(key crypto.PrivateKey, data []byte) ([]byte, error) {
	priv, err := ecdsaPrivateKey(key, elliptic.P256())
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(data)

	return ecdsa.SignASN1(rand.Reader, priv, digest[:])
}

func (ecdsaP256SHA256) Verify(key crypto.PublicKey, signature, data []byte) bool {
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok || pub == nil || pub.Curve != elliptic.P256() {
		return false
	}

	digest := sha256.Sum256(data)

	return ecdsa.VerifyASN1(pub, digest[:], signature)
}

// --- ECDSA P-384 SHA-384 ---

type ecdsaP384SHA384 struct{}

func (ecdsaP384SHA384) Name() string { return AlgorithmECDSAP384SHA384 }

func (ecdsaP384SHA384) Sign(key crypto.PrivateKey, data []byte) ([]byte, error) {
	priv, err := ecdsaPrivateKey(key, elliptic.P384())
	if err != nil {
		return nil, err
	}

	digest := sha512.Sum384(data)

	return ecdsa.SignASN1(rand.Reader, priv, digest[:])
}

func (ecdsaP384SHA384) Verify(key crypto.PublicKey, signature, data []byte) bool {
	pub, ok := key.(*ecdsa.PublicKey)
	if !ok || pub == nil || pub.Curve != elliptic.P384() {
		return false
	}

	digest := sha512.Sum384(data)

	return ecdsa.VerifyASN1(pub, digest[:], signature)
}

func ecdsaPrivateKey(key crypto.PrivateKey, curve elliptic.Curve) (*ecdsa.PrivateKey, error) {
	priv, ok := key.(*ecdsa.PrivateKey)
	if !ok || priv == nil {
		return nil, fmt.Errorf("%w: ecdsa private key required", ErrInvalidKey)
	}

	if priv.Curve != curve {
		return nil, fmt.Errorf("%w: key curve must be %s", ErrInvalidKey, curve.Params().Name)
	}

	return priv, nil
}
