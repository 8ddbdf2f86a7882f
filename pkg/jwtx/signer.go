package jwtx

import (
	"fmt"
	"strings"
)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Algorithm names accepted by NewPair.
const (
	AlgHS256 = "HS256"
	AlgEdDSA = "EdDSA"
)

// NewPair builds a matching signer and verifier. HS256 uses secret; EdDSA uses
// the PKCS8 PEM private key.
func NewPair(alg string, secret, pemKey []byte, opts VerifyOptions) (Signer, Verifier, error) {
	switch {
	case strings.EqualFold(alg, AlgHS256), alg == "":
		s, err := NewSignerHS256(secret)
		if err != nil {
			return nil, nil, err
		}
		return s, NewVerifierHS256(secret, opts), nil
	case strings.EqualFold(alg, AlgEdDSA):
		s, err := NewSignerEdDSA(pemKey)
		if err != nil {
			return nil, nil, err
		}
		return s, NewVerifierEdDSA(s.Public(), opts), nil
	default:
		return nil, nil, fmt.Errorf("jwtx: unsupported algorithm %q", alg)
	}
}
