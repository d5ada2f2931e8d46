package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 signs and verifies with a shared secret. It implements both Signer
// and Verifier, which suits a service that validates its own tokens.
type HS256 struct {
	secret []byte
	opts   verifyOptions
}

// NewHS256 returns an HS256 signer/verifier. Tokens are only accepted when
// their iss claim equals issuer (unless issuer is empty).
func NewHS256(secret []byte, issuer string, leeway time.Duration) (*HS256, error) {
	if len(secret) < 16 {
		return nil, ErrWeakSecret
	}
	return &HS256{
		secret: secret,
		opts:   verifyOptions{alg: jwt.SigningMethodHS256.Alg(), issuer: issuer, leeway: leeway},
	}, nil
}

func (h *HS256) Alg() string { return h.opts.alg }

func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

func (h *HS256) Verify(token string) (Claims, error) {
	return parse(token, h.opts, func(*jwt.Token) (any, error) {
		return h.secret, nil
	})
}
