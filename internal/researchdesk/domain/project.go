package domain

import (
	"strings"
	"time"
)

// Status tracks a project through the publication pipeline.
type Status string

const (
	StatusIdea       Status = "Idea"
	StatusInProgress Status = "In Progress"
	StatusSubmitted  Status = "Submitted"
	StatusAccepted   Status = "Accepted"
	StatusPublished  Status = "Published"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{StatusIdea, StatusInProgress, StatusSubmitted, StatusAccepted, StatusPublished}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ResearchStep is the writing phase a project is in.
type ResearchStep string

const (
	StepAbstract    ResearchStep = "abstract"
	StepLiterature  ResearchStep = "literature"
	StepMethodology ResearchStep = "methodology"
	StepResults     ResearchStep = "results"
	StepConclusion  ResearchStep = "conclusion"
)

// ResearchSteps lists every step in writing order.
var ResearchSteps = []ResearchStep{StepAbstract, StepLiterature, StepMethodology, StepResults, StepConclusion}

func (s ResearchStep) Valid() bool {
	for _, v := range ResearchSteps {
		if s == v {
			return true
		}
	}
	return false
}

// OrDefault maps the unset step to abstract. New projects are stored without
// a step and read back as abstract.
func (s ResearchStep) OrDefault() ResearchStep {
	if s == "" {
		return StepAbstract
	}
	return s
}

// Collaborator is a participant listed on a project. It is not an account;
// matching happens on email only.
type Collaborator struct {
	Name               string
	Email              string
	Role               Role
	RegistrationNumber string
	Organization       string
	Country            string
}

// UserRef is the owner as shown on a single project read.
type UserRef struct {
	ID    string
	Name  string
	Email string
}

type Project struct {
	ID            string
	OwnerID       string
	Owner         *UserRef // only resolved by GetProject
	Name          string
	Description   string
	Track         string
	Format        string
	Conference    string
	Deadline      *time.Time
	PaperURL      string
	Collaborators []Collaborator
	Status        Status
	ResearchStep  ResearchStep // "" until first set
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OwnedBy reports whether userID owns the project.
func (p *Project) OwnedBy(userID string) bool {
	return p.OwnerID == userID
}

// VisibleTo applies the listing rule: owners and listed collaborators see a
// project. Email comparison ignores case.
func (p *Project) VisibleTo(id Identity) bool {
	if p.OwnedBy(id.UserID) {
		return true
	}
	return p.HasCollaborator(id.Email)
}

// HasCollaborator reports whether email appears in the collaborator list.
func (p *Project) HasCollaborator(email string) bool {
	if email == "" {
		return false
	}
	for _, c := range p.Collaborators {
		if strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

// ProjectPatch holds the fields an update overwrites. Nil fields keep their
// stored value. A non-nil Collaborators replaces the whole list, so an empty
// slice clears it. ClearDeadline removes a stored deadline.
type ProjectPatch struct {
	Name          *string
	Description   *string
	Track         *string
	Format        *string
	Conference    *string
	Deadline      *time.Time
	ClearDeadline bool
	PaperURL      *string
	Collaborators *[]Collaborator
	Status        *Status
	ResearchStep  *ResearchStep
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Track == nil && p.Format == nil &&
		p.Conference == nil && p.Deadline == nil && !p.ClearDeadline && p.PaperURL == nil &&
		p.Collaborators == nil && p.Status == nil && p.ResearchStep == nil
}

// Apply copies the patch onto p. Stores that cannot update columns
// individually use it to merge in memory.
func (p ProjectPatch) Apply(dst *Project) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Track != nil {
		dst.Track = *p.Track
	}
	if p.Format != nil {
		dst.Format = *p.Format
	}
	if p.Conference != nil {
		dst.Conference = *p.Conference
	}
	if p.ClearDeadline {
		dst.Deadline = nil
	}
	if p.Deadline != nil {
		d := *p.Deadline
		dst.Deadline = &d
	}
	if p.PaperURL != nil {
		dst.PaperURL = *p.PaperURL
	}
	if p.Collaborators != nil {
		dst.Collaborators = append([]Collaborator(nil), (*p.Collaborators)...)
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.ResearchStep != nil {
		dst.ResearchStep = *p.ResearchStep
	}
}
