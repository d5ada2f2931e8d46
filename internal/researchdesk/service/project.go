package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/pkg/idx"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

// ReadScope decides who may read a single project by id.
type ReadScope string

const (
	// ReadScopeAny lets any authenticated caller read any project.
	ReadScopeAny ReadScope = "any"

	// ReadScopeVisible applies the listing rule: owner or collaborator.
	ReadScopeVisible ReadScope = "visible"
)

func (s ReadScope) Valid() bool {
	return s == ReadScopeAny || s == ReadScopeVisible
}

// ProjectIndexer keeps an external search index in step with the store.
type ProjectIndexer interface {
	IndexProjects(ctx context.Context, ps ...domain.Project) error
	RemoveProject(ctx context.Context, id string) error
}

// PaperRemover drops the stored paper of a deleted project.
type PaperRemover interface {
	RemovePaper(ctx context.Context, projectID string) error
}

// indexTimeout bounds the background index calls that follow a write.
const indexTimeout = 10 * time.Second

type ProjectService struct {
	Store     store.Store
	ReadScope ReadScope

	// Optional collaborators. Failures in either are logged, never returned.
	Indexer ProjectIndexer
	Papers  PaperRemover
}

type CollaboratorInput struct {
	Name               string `json:"name" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Role               string `json:"role" validate:"required,oneof=researcher guide"`
	RegistrationNumber string `json:"registrationNumber"`
	Organization       string `json:"organization"`
	Country            string `json:"country"`
}

type CreateProjectInput struct {
	Name          string              `json:"name" validate:"required"`
	Description   string              `json:"description"`
	Track         string              `json:"track" validate:"required"`
	Format        string              `json:"format" validate:"required"`
	Conference    string              `json:"conference"`
	Deadline      string              `json:"deadline"`
	PaperURL      string              `json:"paperUrl" validate:"omitempty,uri"`
	Collaborators []CollaboratorInput `json:"collaborators" validate:"dive"`
}

// UpdateProjectInput fields are optional; nil means "leave as is". An empty
// string clears an optional field and is rejected for name, track and format.
type UpdateProjectInput struct {
	Name          *string              `json:"name"`
	Description   *string              `json:"description"`
	Track         *string              `json:"track"`
	Format        *string              `json:"format"`
	Conference    *string              `json:"conference"`
	Deadline      *string              `json:"deadline"`
	PaperURL      *string              `json:"paperUrl"`
	Collaborators *[]CollaboratorInput `json:"collaborators"`
	Status        *string              `json:"status"`
	ResearchStep  *string              `json:"researchStep"`
}

func toCollaborators(in []CollaboratorInput) []domain.Collaborator {
	out := make([]domain.Collaborator, len(in))
	for i, c := range in {
		out[i] = domain.Collaborator{
			Name:               strings.TrimSpace(c.Name),
			Email:              strings.TrimSpace(c.Email),
			Role:               domain.Role(c.Role),
			RegistrationNumber: c.RegistrationNumber,
			Organization:       c.Organization,
			Country:            c.Country,
		}
	}
	return out
}

func trimCollaborators(in []CollaboratorInput) {
	for i := range in {
		in[i].Name = strings.TrimSpace(in[i].Name)
		in[i].Email = strings.TrimSpace(in[i].Email)
	}
}

// Create stores a new project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, id domain.Identity, in CreateProjectInput) (domain.Project, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Track = strings.TrimSpace(in.Track)
	in.Format = strings.TrimSpace(in.Format)
	trimCollaborators(in.Collaborators)

	ve := &ValidationError{}
	validateStruct(ve, "", in)
	deadline, err := parseDeadline(in.Deadline)
	if err != nil {
		ve.add("deadline", "Invalid date")
	}
	if err := ve.orNil(); err != nil {
		return domain.Project{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	p := domain.Project{
		ID:            idx.NewAt(now).String(),
		OwnerID:       id.UserID,
		Name:          in.Name,
		Description:   in.Description,
		Track:         in.Track,
		Format:        in.Format,
		Conference:    in.Conference,
		Deadline:      deadline,
		PaperURL:      in.PaperURL,
		Collaborators: toCollaborators(in.Collaborators),
		Status:        domain.StatusIdea,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Projects().CreateProject(ctx, p)
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("create project: %w", err)
	}

	slogx.FromContext(ctx).Info("project created",
		slog.String("project_id", p.ID),
		slog.Int("collaborators", len(p.Collaborators)),
	)
	s.index(ctx, p)
	return p, nil
}

// ListForUser returns the projects the caller owns or collaborates on,
// newest first.
func (s *ProjectService) ListForUser(ctx context.Context, id domain.Identity) ([]domain.Project, error) {
	ps, err := s.Store.Projects().ListVisible(ctx, id.UserID, id.Email)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ps, nil
}

// GetByID returns a project with its owner resolved. Under ReadScopeVisible
// a project the caller cannot see is reported as missing.
func (s *ProjectService) GetByID(ctx context.Context, id domain.Identity, projectID string) (domain.Project, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if !s.canRead(id, &p) {
		return domain.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (s *ProjectService) canRead(id domain.Identity, p *domain.Project) bool {
	return s.ReadScope != ReadScopeVisible || p.VisibleTo(id)
}

func (s *ProjectService) load(ctx context.Context, projectID string) (domain.Project, error) {
	if !idx.Valid(projectID) {
		return domain.Project{}, ErrProjectNotFound
	}
	p, err := s.Store.Projects().GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Project{}, ErrProjectNotFound
		}
		return domain.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// buildPatch validates in and converts it into a store patch.
func buildPatch(in UpdateProjectInput) (domain.ProjectPatch, error) {
	ve := &ValidationError{}
	var patch domain.ProjectPatch

	required := func(field string, v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			ve.add(field, "Required")
			return nil
		}
		return &t
	}
	patch.Name = required("name", in.Name)
	patch.Track = required("track", in.Track)
	patch.Format = required("format", in.Format)

	patch.Description = in.Description
	patch.Conference = in.Conference

	if in.PaperURL != nil {
		if *in.PaperURL != "" {
			validateVar(ve, "paperUrl", *in.PaperURL, "uri")
		}
		patch.PaperURL = in.PaperURL
	}

	if in.Deadline != nil {
		d, err := parseDeadline(*in.Deadline)
		switch {
		case err != nil:
			ve.add("deadline", "Invalid date")
		case d == nil:
			patch.ClearDeadline = true
		default:
			patch.Deadline = d
		}
	}

	if in.Collaborators != nil {
		list := *in.Collaborators
		trimCollaborators(list)
		for i, c := range list {
			validateStruct(ve, fmt.Sprintf("collaborators.%d", i), c)
		}
		cs := toCollaborators(list)
		patch.Collaborators = &cs
	}

	if in.Status != nil {
		st := domain.Status(*in.Status)
		if !st.Valid() {
			ve.add("status", "Must be one of: Idea, In Progress, Submitted, Accepted, Published")
		}
		patch.Status = &st
	}

	if in.ResearchStep != nil {
		step := domain.ResearchStep(*in.ResearchStep)
		if !step.Valid() {
			ve.add("researchStep", "Must be one of: abstract, literature, methodology, results, conclusion")
		}
		patch.ResearchStep = &step
	}

	if err := ve.orNil(); err != nil {
		return domain.ProjectPatch{}, err
	}
	return patch, nil
}

// Update overwrites the supplied fields of a project the caller owns.
func (s *ProjectService) Update(ctx context.Context, id domain.Identity, projectID string, in UpdateProjectInput) (domain.Project, error) {
	patch, err := buildPatch(in)
	if err != nil {
		return domain.Project{}, err
	}
	return s.apply(ctx, id, projectID, patch)
}

// apply runs the existence and ownership checks and writes patch. It is
// shared with PaperService, which sets paperUrl after an upload.
func (s *ProjectService) apply(ctx context.Context, id domain.Identity, projectID string, patch domain.ProjectPatch) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	var updated domain.Project
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Projects().GetProject(ctx, projectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if !p.OwnedBy(id.UserID) {
			log.Warn("project update by non-owner",
				slog.String("project_id", projectID),
				slog.String("user_id", id.UserID),
			)
			return &ForbiddenError{Action: "update"}
		}

		if !patch.Empty() {
			if err := tx.Projects().UpdateProject(ctx, projectID, patch); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrProjectNotFound
				}
				return err
			}
		}

		updated, err = tx.Projects().GetProject(ctx, projectID)
		return err
	})
	if err != nil {
		if isDomainError(err) {
			return domain.Project{}, err
		}
		return domain.Project{}, fmt.Errorf("update project: %w", err)
	}

	log.Info("project updated", slog.String("project_id", projectID))
	s.index(ctx, updated)
	return updated, nil
}

// Delete removes a project the caller owns, along with its collaborators.
// The stored paper and search document go too, best effort.
func (s *ProjectService) Delete(ctx context.Context, id domain.Identity, projectID string) error {
	log := slogx.FromContext(ctx)

	if !idx.Valid(projectID) {
		return ErrProjectNotFound
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := tx.Projects().GetProject(ctx, projectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		if !p.OwnedBy(id.UserID) {
			log.Warn("project delete by non-owner",
				slog.String("project_id", projectID),
				slog.String("user_id", id.UserID),
			)
			return &ForbiddenError{Action: "delete"}
		}

		if err := tx.Projects().DeleteProject(ctx, projectID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrProjectNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return err
		}
		return fmt.Errorf("delete project: %w", err)
	}

	log.Info("project deleted", slog.String("project_id", projectID))

	if s.Papers != nil {
		if err := s.Papers.RemovePaper(ctx, projectID); err != nil && !errors.Is(err, ErrStorageDisabled) {
			log.Warn("failed to remove paper of deleted project",
				slog.String("project_id", projectID),
				slog.Any("error", err),
			)
		}
	}
	s.unindex(ctx, projectID)
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrForbidden)
}

// index pushes p to the search index in the background.
func (s *ProjectService) index(ctx context.Context, p domain.Project) {
	if s.Indexer == nil {
		return
	}
	log := slogx.FromContext(ctx)
	bg := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(bg, indexTimeout)
		defer cancel()
		if err := s.Indexer.IndexProjects(ctx, p); err != nil {
			log.Warn("failed to index project", slog.String("project_id", p.ID), slog.Any("error", err))
		}
	}()
}

func (s *ProjectService) unindex(ctx context.Context, projectID string) {
	if s.Indexer == nil {
		return
	}
	log := slogx.FromContext(ctx)
	bg := context.WithoutCancel(ctx)

	go func() {
		ctx, cancel := context.WithTimeout(bg, indexTimeout)
		defer cancel()
		if err := s.Indexer.RemoveProject(ctx, projectID); err != nil {
			log.Warn("failed to remove project from index", slog.String("project_id", projectID), slog.Any("error", err))
		}
	}()
}
