package jwtx

import (
	"crypto/ed25519"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier validates JWTs signed using EdDSA (Ed25519).
type EdDSAVerifier struct {
	pub  ed25519.PublicKey
	opts VerifyOptions
}

func NewVerifierEdDSA(pub ed25519.PublicKey, opts VerifyOptions) *EdDSAVerifier {
	return &EdDSAVerifier{pub: pub, opts: opts}
}

func (v *EdDSAVerifier) Verify(token string) (Claims, error) {
	return parse(token, jwt.SigningMethodEdDSA, v.pub, v.opts)
}
