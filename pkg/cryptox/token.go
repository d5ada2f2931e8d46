package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenSize256 is 32 random bytes, 43 characters once encoded.
const TokenSize256 = 32

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
