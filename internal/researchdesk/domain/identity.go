package domain

// Identity is the verified caller of a request. The auth middleware builds it
// from the bearer token and handlers pass it to every service call that
// depends on who is asking.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// IsZero reports whether no caller is attached.
func (i Identity) IsZero() bool { return i.UserID == "" }
