package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer turns claims into a compact JWS.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier parses a compact JWS and returns its claims when the signature,
// issuer and validity window all check out.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrWeakSecret  = errors.New("jwtx: HS256 secret must be at least 16 bytes")
)

// verifyOptions are shared by every algorithm's verifier.
type verifyOptions struct {
	alg    string
	issuer string
	leeway time.Duration
}

// parse runs jwt's parser and collapses its error zoo onto our sentinels.
func parse(tokenStr string, opts verifyOptions, key jwt.Keyfunc) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{opts.alg}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(opts.leeway),
	}
	if opts.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.issuer))
	}

	var claims Claims
	token, err := jwt.NewParser(parserOpts...).ParseWithClaims(tokenStr, &claims, key)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return Claims{}, ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return Claims{}, ErrIssuer
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidSig, err)
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !token.Valid || claims.Subject == "" {
		return Claims{}, ErrMalformed
	}
	return claims, nil
}
