package domain

import "time"

type User struct {
	ID           string
	Email        string // unique, stored lowercase
	Name         string
	PasswordHash string // argon2id PHC string
	Role         Role

	// Exactly one of these is set, matching Role.
	RegistrationNumber string
	FacultyID          string

	PhoneNumber string
	Department  string
	Avatar      string // URL

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch holds profile fields to overwrite. Nil fields are left alone.
type UserPatch struct {
	Name         *string
	PhoneNumber  *string
	Department   *string
	Avatar       *string
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.PhoneNumber == nil && p.Department == nil && p.Avatar == nil && p.PasswordHash == nil
}
