package service

import (
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
)

// TokenService mints the bearer tokens handed out by register, login and
// profile updates. Tokens are not stored, so there is nothing to revoke.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

// Issue signs a token for u valid for TTL (30 days when unset).
func (s *TokenService) Issue(u domain.User) (string, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewUserClaims(u.ID, u.Email, u.Name, string(u.Role), s.Issuer, ttl, now)
	return s.Signer.Sign(claims)
}

// IdentityFromClaims converts verified token claims into the caller identity
// services expect.
func IdentityFromClaims(c jwtx.Claims) domain.Identity {
	return domain.Identity{
		UserID: c.Subject,
		Email:  c.Email,
		Name:   c.Name,
		Role:   domain.Role(c.Role),
	}
}
