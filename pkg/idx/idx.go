// Package idx generates and parses the ULID identifiers used for users,
// projects and request ids.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is the canonical 26 character Crockford base32 form of a ULID.
type ID string

// Zero is the empty ID. Stores never hand it out.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a new ID stamped with the current UTC time. IDs created within
// the same millisecond are still strictly increasing, so sorting by ID
// matches creation order.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns an ID stamped with t. Tests use it to build IDs with a known
// ordering.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Parse validates s and returns it as an ID. Surrounding whitespace is
// ignored and lowercase input is normalised.
func Parse(s string) (ID, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Zero, ErrInvalid
	}

	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// Valid reports whether s parses as an ID.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

func (id ID) String() string { return string(id) }

// Time returns the timestamp embedded in the ID, or the zero time when the ID
// is not a valid ULID.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
