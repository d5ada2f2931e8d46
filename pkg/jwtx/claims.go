// Package jwtx issues and verifies the bearer tokens handed out at register
// and login.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the fixed bearer token lifetime. There is no refresh
// flow, so clients log in again once it lapses.
const DefaultTokenTTL = 30 * 24 * time.Hour

// Claims identify a user. The subject is the user id; the remaining fields
// are copies of profile data taken when the token was issued.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// NewUserClaims builds claims for userID valid from now until now+ttl.
func NewUserClaims(userID, email, name, role, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Email: email,
		Name:  name,
		Role:  role,
	}
}

func newJTI() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the iss claim. An empty expectation accepts anything.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry rejects tokens past exp or before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryWithLeeway(0)
}

// ValidateExpiryWithLeeway is ValidateExpiry with a grace period for clock
// skew between issuer and verifier.
func (c *Claims) ValidateExpiryWithLeeway(leeway time.Duration) error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
