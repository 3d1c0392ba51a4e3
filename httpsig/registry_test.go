package httpsig

import (
	"crypto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlgorithm struct {
	name string
}

func (f fakeAlgorithm) Name() string { return f.name }

func (f fakeAlgorithm) Sign(_ crypto.PrivateKey, _ []byte) ([]byte, error) {
	return []byte(f.name), nil
}

func (f fakeAlgorithm) Verify(_ crypto.PublicKey, _, _ []byte) bool {
	return true
}

func TestRegistry(t *testing.T) {
	t.Run("builtins registered", func(t *testing.T) {
		registry := NewRegistry()

		for _, name := range []string{
			AlgorithmRSAPSSSHA512,
			AlgorithmRSAv15SHA256,
			AlgorithmEd25519,
			AlgorithmECDSAP256SHA256,
			AlgorithmECDSAP384SHA384,
		} {
			alg, ok := registry.Get(name)
			require.True(t, ok, name)
			assert.Equal(t, name, alg.Name())
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		registry := NewRegistry()

		alg, ok := registry.Get("hmac-sha256")
		assert.False(t, ok)
		assert.Nil(t, alg)
	})

	t.Run("register custom algorithm", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(fakeAlgorithm{name: "custom-alg"})

		alg, ok := registry.Get("custom-alg")
		require.True(t, ok)
		assert.Equal(t, "custom-alg", alg.Name())
	})

	t.Run("last registration wins", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(fakeAlgorithm{name: AlgorithmEd25519})

		alg, ok := registry.Get(AlgorithmEd25519)
		require.True(t, ok)

		_, isFake := alg.(fakeAlgorithm)
		assert.True(t, isFake)
	})

	t.Run("names sorted", func(t *testing.T) {
		registry := NewRegistry()

		assert.Equal(t, []string{
			AlgorithmECDSAP256SHA256,
			AlgorithmECDSAP384SHA384,
			AlgorithmEd25519,
			AlgorithmRSAPSSSHA512,
			AlgorithmRSAv15SHA256,
		}, registry.Names())
	})
}
