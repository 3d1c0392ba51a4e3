package httpsig

import "sort"

// Registry maps algorithm names to Algorithm implementations. It is built
// once at process start and injected into Signer and Verifier construction;
// after startup it is read-only, so lookups need no locking.
//
// Register must not be called concurrently with Get or Names.
type Registry struct {
	algorithms map[string]Algorithm
}

// NewRegistry returns a Registry pre-populated with the built-in
// algorithms: rsa-pss-sha512, rsa-v1_5-sha256, ed25519, ecdsa-p256-sha256
// and ecdsa-p384-sha384.
func NewRegistry() *Registry {
	r := &Registry{algorithms: make(map[string]Algorithm)}

	r.Register(rsaPSSSHA512{})
	r.Register(rsaV15SHA256{})
	r.Register(ed25519Algorithm{})
	r.Register(ecdsaP256SHA256{})
	r.Register(ecdsaP384SHA384{})

	return r
}

// Register adds an algorithm to the registry. An existing entry with the
// same name is replaced; the last registration wins.
func (r *Registry) Register(a Algorithm) {
	r.algorithms[a.Name()] = a
}

// Get returns the algorithm registered under name.
func (r *Registry) Get(name string) (Algorithm, bool) {
	a, ok := r.algorithms[name]

	return a, ok
}

// Names returns the sorted names of all registered algorithms.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
