package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

// ErrMismatch is returned by Verify when the password does not match.
var ErrMismatch = errors.New("password does not match")

// ErrMalformedHash is returned by Verify when the stored hash cannot be parsed.
var ErrMalformedHash = errors.New("malformed password hash")

// Params are the Argon2id cost parameters written into every hash.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
	SaltLength  int
}

// DefaultParams follow the OWASP baseline for Argon2id (19 MiB, t=2, p=1).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

// Hasher hashes and verifies passwords in PHC string format. The pepper is
// appended to every password and never stored alongside the hash.
type Hasher struct {
	pepper string
	params Params

	dummyOnce sync.Once
	dummy     string
}

// NewHasher returns a Hasher using DefaultParams.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper, params: DefaultParams}
}

// NewHasherWithParams is NewHasher with explicit cost parameters. Tests use it
// to keep hashing cheap.
func NewHasherWithParams(pepper string, p Params) *Hasher {
	return &Hasher{pepper: pepper, params: p}
}

// Hash returns "$argon2id$v=19$m=..,t=..,p=..$salt$hash".
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password+h.pepper), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks password against a hash produced by Hash. The parameters
// recorded in the hash are used, so raising DefaultParams does not lock out
// existing users.
func (h *Hasher) Verify(password, encoded string) error {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return ErrMalformedHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return ErrMalformedHash
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return ErrMalformedHash
	}
	// argon2 panics on zero rounds or threads
	if iters < 1 || par < 1 {
		return ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return ErrMalformedHash
	}

	got := argon2.IDKey([]byte(password+h.pepper), salt, iters, mem, par, uint32(len(want))) // #nosec G115 -- len(want) is a decoded hash
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

// VerifyDummy burns the same CPU as a real Verify. Login calls it when the
// email is unknown so response timing does not reveal which accounts exist.
func (h *Hasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = h.Hash("researchdesk-dummy-password")
	})
	_ = h.Verify(password, h.dummy)
}
