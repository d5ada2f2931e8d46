package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/pkg/objstore"
	"github.com/aussiebroadwan/researchdesk/pkg/pdfx"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

const (
	// DefaultPaperMaxBytes caps uploads when no limit is configured.
	DefaultPaperMaxBytes = 20 << 20

	// PaperURLTTL is how long a download link stays valid.
	PaperURLTTL = 15 * time.Minute
)

// PaperKey is the object key a project's paper is stored under.
func PaperKey(projectID string) string {
	return "papers/" + projectID + ".pdf"
}

// PaperService stores one PDF per project in object storage. With Objects
// nil every call fails with ErrStorageDisabled.
type PaperService struct {
	Projects *ProjectService
	Objects  objstore.Store
	MaxBytes int64

	// BasePath prefixes the paperUrl written to the project, normally the
	// API prefix.
	BasePath string
}

// Enabled reports whether object storage is configured.
func (s *PaperService) Enabled() bool { return s != nil && s.Objects != nil }

func (s *PaperService) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return DefaultPaperMaxBytes
}

// PaperURL is the API path that redirects to the stored paper.
func (s *PaperService) PaperURL(projectID string) string {
	return s.BasePath + "/projects/" + projectID + "/paper"
}

// Upload stores f as the paper of a project the caller owns and points the
// project's paperUrl at it.
func (s *PaperService) Upload(ctx context.Context, id domain.Identity, projectID string, f UploadedFile) (domain.Project, error) {
	log := slogx.FromContext(ctx)

	if !s.Enabled() {
		return domain.Project{}, ErrStorageDisabled
	}

	mediaType, _, err := mime.ParseMediaType(f.ContentType)
	if err != nil || mediaType != pdfx.ContentType || !pdfx.HasSignature(f.Data) {
		return domain.Project{}, ErrUnsupportedFile
	}
	if int64(len(f.Data)) > s.maxBytes() {
		return domain.Project{}, &ValidationError{Fields: []FieldError{{
			Field:   "file",
			Message: fmt.Sprintf("File must be at most %d bytes", s.maxBytes()),
		}}}
	}

	p, err := s.Projects.load(ctx, projectID)
	if err != nil {
		return domain.Project{}, err
	}
	if !p.OwnedBy(id.UserID) {
		return domain.Project{}, &ForbiddenError{Action: "update"}
	}

	key := PaperKey(projectID)
	if err := s.Objects.Put(ctx, key, bytes.NewReader(f.Data), int64(len(f.Data)), pdfx.ContentType); err != nil {
		return domain.Project{}, &ExternalServiceError{Message: "Failed to store paper.", Err: err}
	}
	log.Info("paper stored", slog.String("project_id", projectID), slog.Int("bytes", len(f.Data)))

	url := s.PaperURL(projectID)
	return s.Projects.apply(ctx, id, projectID, domain.ProjectPatch{PaperURL: &url})
}

// DownloadURL returns a short-lived link to the paper of a project the
// caller may read.
func (s *PaperService) DownloadURL(ctx context.Context, id domain.Identity, projectID string) (string, error) {
	if !s.Enabled() {
		return "", ErrStorageDisabled
	}

	if _, err := s.Projects.GetByID(ctx, id, projectID); err != nil {
		return "", err
	}

	key := PaperKey(projectID)
	ok, err := s.Objects.Exists(ctx, key)
	if err != nil {
		return "", &ExternalServiceError{Message: "Failed to locate paper.", Err: err}
	}
	if !ok {
		return "", ErrPaperNotFound
	}

	url, err := s.Objects.PresignGet(ctx, key, PaperURLTTL)
	if err != nil {
		return "", &ExternalServiceError{Message: "Failed to sign paper URL.", Err: err}
	}
	return url, nil
}

// RemovePaper deletes the stored paper of projectID, if any.
func (s *PaperService) RemovePaper(ctx context.Context, projectID string) error {
	if !s.Enabled() {
		return ErrStorageDisabled
	}
	if err := s.Objects.Delete(ctx, PaperKey(projectID)); err != nil && !errors.Is(err, objstore.ErrNotFound) {
		return err
	}
	return nil
}
