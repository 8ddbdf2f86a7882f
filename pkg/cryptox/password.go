package cryptox

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash is returned when an encoded hash cannot be parsed. A
// well-formed hash that simply does not match is not an error.
var ErrMalformedHash = errors.New("cryptox: malformed hash")

// Hasher turns secrets (passwords and PINs) into salted, slow, self-describing
// hashes and checks candidates against them.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}

// Argon2Params are the tunable work factors for Argon2idHasher.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultArgon2Params follows the OWASP minimum for argon2id.
var DefaultArgon2Params = Argon2Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
}

const (
	argonKeyLength  = 32
	argonSaltLength = 16
)

// Argon2idHasher produces PHC-format argon2id hashes peppered with GetPepper.
type Argon2idHasher struct {
	Params Argon2Params
}

func (h Argon2idHasher) params() Argon2Params {
	p := h.Params
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return DefaultArgon2Params
	}
	return p
}

// Hash generates a PHC-format Argon2id hash string including salt and parameters.
func (h Argon2idHasher) Hash(secret string) (string, error) {
	p := h.params()

	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	sum := argon2.IDKey([]byte(secret+GetPepper()), salt, p.Iterations, p.Memory, p.Parallelism, argonKeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify compares secret against a PHC-format argon2id hash in constant time.
func (h Argon2idHasher) Verify(secret, encoded string) (bool, error) {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return false, fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return false, fmt.Errorf("%w: wrong version", ErrMalformedHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return false, fmt.Errorf("%w: parameters: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, fmt.Errorf("%w: digest", ErrMalformedHash)
	}

	got := argon2.IDKey(
		[]byte(secret+GetPepper()),
		salt,
		iters,
		mem,
		par,
		uint32(len(want)), // #nosec G115 - digest length is bounded by the encoder
	)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// BcryptHasher produces bcrypt hashes. The secret is first reduced with
// HMAC-SHA256 keyed by the pepper so inputs never hit bcrypt's 72 byte limit.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) cost() int {
	if h.Cost < bcrypt.MinCost || h.Cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return h.Cost
}

func (h BcryptHasher) Hash(secret string) (string, error) {
	out, err := bcrypt.GenerateFromPassword(prehash(secret), h.cost())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Verify(secret, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), prehash(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
}

func prehash(secret string) []byte {
	mac := hmac.New(sha256.New, []byte(GetPepper()))
	mac.Write([]byte(secret))
	return []byte(base64.RawStdEncoding.EncodeToString(mac.Sum(nil)))
}

// NewHasher returns the Hasher for algorithm ("argon2id" or "bcrypt").
// bcryptCost is ignored for argon2id.
func NewHasher(algorithm string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", "argon2id":
		return Argon2idHasher{}, nil
	case "bcrypt":
		return BcryptHasher{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("cryptox: unknown hash algorithm %q", algorithm)
	}
}

// HashPassword hashes with the default argon2id hasher.
func HashPassword(secret string) (string, error) {
	return Argon2idHasher{}.Hash(secret)
}

// VerifyPassword checks secret against a hash produced by either supported
// algorithm, dispatching on the encoded prefix. A mismatch returns
// (false, nil); only malformed input returns an error.
func VerifyPassword(secret, encoded string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return Argon2idHasher{}.Verify(secret, encoded)
	case strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"),
		strings.HasPrefix(encoded, "$2y$"):
		return BcryptHasher{}.Verify(secret, encoded)
	default:
		return false, fmt.Errorf("%w: unknown algorithm", ErrMalformedHash)
	}
}
