package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PINLength is the number of decimal digits in a login PIN.
const PINLength = 6

const (
	pinMin = 100000
	pinMax = 999999
)

var pinSpan = big.NewInt(pinMax - pinMin + 1)

// GeneratePIN returns a uniformly random six digit PIN in [100000, 999999].
// rand.Int rejects out-of-range samples internally so there is no modulo bias.
func GeneratePIN() (string, error) {
	n, err := rand.Int(rand.Reader, pinSpan)
	if err != nil {
		return "", fmt.Errorf("failed to generate pin: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+pinMin), nil
}

// IsPIN reports whether s has the shape of a login PIN.
func IsPIN(s string) bool {
	if len(s) != PINLength {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
