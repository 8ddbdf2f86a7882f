package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
		{"custom size", 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)
			require.NotContains(t, token, "=")
			require.NotContains(t, token, "+")
			require.NotContains(t, token, "/")

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}

func TestGeneratePIN(t *testing.T) {
	seen := make(map[string]struct{}, 200)
	for range 200 {
		pin, err := GeneratePIN()
		require.NoError(t, err)
		require.True(t, IsPIN(pin), "pin %q should be six digits", pin)
		require.NotEqual(t, byte('0'), pin[0], "pin must be in [100000, 999999]")
		seen[pin] = struct{}{}
	}
	// 200 draws from 900000 values; a handful of collisions is possible, a
	// constant generator is not.
	require.Greater(t, len(seen), 190)
}

func TestIsPIN(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"123456", true},
		{"000000", true},
		{"12345", false},
		{"1234567", false},
		{"12a456", false},
		{"", false},
		{strings.Repeat("٣", 6), false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsPIN(tt.in), "IsPIN(%q)", tt.in)
	}
}
