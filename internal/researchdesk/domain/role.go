package domain

// Role is the kind of account, and also the part a collaborator plays on a
// project.
type Role string

const (
	RoleResearcher Role = "researcher"
	RoleGuide      Role = "guide"
)

func (r Role) Valid() bool {
	return r == RoleResearcher || r == RoleGuide
}
