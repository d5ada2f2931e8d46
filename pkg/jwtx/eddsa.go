package jwtx

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"time"

	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// EdDSA signs with an Ed25519 private key and verifies with its public half.
// The kid header is derived from the public key so a swapped key file is
// detected instead of producing confusing signature errors.
type EdDSA struct {
	kid  string
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	opts verifyOptions
}

// NewEdDSA loads a PKCS8 PEM encoded Ed25519 key.
func NewEdDSA(pemKey []byte, issuer string, leeway time.Duration) (*EdDSA, error) {
	priv, err := cryptox.ParseEd25519PrivateKey(pemKey)
	if err != nil {
		return nil, err
	}

	pub := priv.Public().(ed25519.PublicKey)
	sum := sha256.Sum256(pub)

	return &EdDSA{
		kid:  base64.RawURLEncoding.EncodeToString(sum[:8]),
		priv: priv,
		pub:  pub,
		opts: verifyOptions{alg: jwt.SigningMethodEdDSA.Alg(), issuer: issuer, leeway: leeway},
	}, nil
}

func (e *EdDSA) Alg() string { return e.opts.alg }

// KID is the key id placed in every token header.
func (e *EdDSA) KID() string { return e.kid }

func (e *EdDSA) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = e.kid
	return t.SignedString(e.priv)
}

func (e *EdDSA) Verify(token string) (Claims, error) {
	return parse(token, e.opts, func(t *jwt.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != e.kid {
			return nil, errors.New("jwtx: unknown kid")
		}
		return e.pub, nil
	})
}
