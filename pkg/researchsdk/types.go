package researchsdk

import "time"

// ============================================================================
// Errors
// ============================================================================

// FieldError points at one invalid request field by its JSON path, such as
// "collaborators.0.email".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// MessageResponse is a bare confirmation, such as a project deletion.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Users
// ============================================================================

// RegisterRequest creates an account. Researchers must send
// RegistrationNumber and guides must send FacultyID.
type RegisterRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	Role               string `json:"role"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	FacultyID          string `json:"facultyId,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
	Department         string `json:"department,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest changes the supplied profile fields. Email is
// accepted but ignored by the server.
type UpdateProfileRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Department  *string `json:"department,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

// UserResponse is a public user profile.
type UserResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	FacultyID          string `json:"facultyId,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
	Department         string `json:"department,omitempty"`
	Avatar             string `json:"avatar,omitempty"`
}

// AuthResponse is a profile with a bearer token, returned by register, login
// and profile updates.
type AuthResponse struct {
	UserResponse
	Token string `json:"token"`
}

// ============================================================================
// Projects
// ============================================================================

type Collaborator struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Organization       string `json:"organization,omitempty"`
	Country            string `json:"country,omitempty"`
}

// ProjectOwner identifies the owner. Name and Email are only filled in when
// a single project is fetched by id.
type ProjectOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type Project struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Track         string         `json:"track"`
	Format        string         `json:"format"`
	Conference    string         `json:"conference"`
	Deadline      *time.Time     `json:"deadline,omitempty"`
	PaperURL      string         `json:"paperUrl"`
	Collaborators []Collaborator `json:"collaborators"`
	Status        string         `json:"status"`
	ResearchStep  string         `json:"researchStep"`
	Owner         ProjectOwner   `json:"owner"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CreateProjectRequest requires Name, Track and Format. Deadline is RFC 3339
// or YYYY-MM-DD.
type CreateProjectRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	Track         string         `json:"track"`
	Format        string         `json:"format"`
	Conference    string         `json:"conference,omitempty"`
	Deadline      string         `json:"deadline,omitempty"`
	PaperURL      string         `json:"paperUrl,omitempty"`
	Collaborators []Collaborator `json:"collaborators,omitempty"`
}

// UpdateProjectRequest overwrites the non-nil fields. An empty string clears
// an optional field; a non-nil Collaborators replaces the whole list.
type UpdateProjectRequest struct {
	Name          *string         `json:"name,omitempty"`
	Description   *string         `json:"description,omitempty"`
	Track         *string         `json:"track,omitempty"`
	Format        *string         `json:"format,omitempty"`
	Conference    *string         `json:"conference,omitempty"`
	Deadline      *string         `json:"deadline,omitempty"`
	PaperURL      *string         `json:"paperUrl,omitempty"`
	Collaborators *[]Collaborator `json:"collaborators,omitempty"`
	Status        *string         `json:"status,omitempty"`
	ResearchStep  *string         `json:"researchStep,omitempty"`
}

// ============================================================================
// Directory
// ============================================================================

type ProjectLink struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectoryEntry is one collaborator merged across the caller's projects.
type DirectoryEntry struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         string        `json:"role"`
	Organization string        `json:"organization,omitempty"`
	Country      string        `json:"country,omitempty"`
	ProjectCount int           `json:"projectCount"`
	Projects     []ProjectLink `json:"projects"`
}

type DashboardStats struct {
	TotalProjects     int            `json:"totalProjects"`
	ByStatus          map[string]int `json:"byStatus"`
	ByResearchStep    map[string]int `json:"byResearchStep"`
	Collaborators     int            `json:"collaborators"`
	UpcomingDeadlines []Project      `json:"upcomingDeadlines"`
}

// ============================================================================
// Analysis
// ============================================================================

type AnalysisRequest struct {
	Text string `json:"text"`
}

type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

type PlagiarismResponse struct {
	Result string `json:"result"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency as "ok", "disabled" or "error: ...".
type HealthChecks struct {
	Database string `json:"database"`
	Search   string `json:"search,omitempty"`
	Storage  string `json:"storage,omitempty"`
}
