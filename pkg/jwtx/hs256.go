package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// MinHS256SecretLength is the shortest secret NewSignerHS256 accepts.
const MinHS256SecretLength = 32

// HS256Signer signs with a shared server secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HMAC-SHA256 signer.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinHS256SecretLength {
		return nil, errors.New("jwtx: HS256 secret must be at least 32 bytes")
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// HS256Verifier validates tokens minted by HS256Signer with the same secret.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

func NewVerifierHS256(secret []byte, opts VerifyOptions) *HS256Verifier {
	return &HS256Verifier{secret: secret, opts: opts}
}

func (v *HS256Verifier) Verify(token string) (Claims, error) {
	return parse(token, jwt.SigningMethodHS256, v.secret, v.opts)
}
