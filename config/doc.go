// Package config loads YAML configuration for HTTP message signature
// verification and signing.
//
//	verify:
//	  jwks_url: https://issuer.example.com/.well-known/jwks.json
//	  max_age: 300
//	  algorithms:
//	    - rsa-pss-sha512
//	  required_components:
//	    - "@method"
//	    - "@target-uri"
//	    - "@authority"
//	  realm: api
//
//	sign:
//	  key_id: client-key-1
//	  algorithm: rsa-pss-sha512
//	  private_key_file: /etc/keys/client.pem
//	  components:
//	    - "@method"
//	    - "@target-uri"
//	    - content-digest
//	  nonce: true
//
// Load applies defaults and validates: a verify section without a JWKS
// URL is a hard error at load time, not at request time. The Build
// methods wire loaded sections into httpsig and jwks values.
package config
