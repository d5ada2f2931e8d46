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
	"github.com/aussiebroadwan/researchdesk/pkg/cryptox"
	"github.com/aussiebroadwan/researchdesk/pkg/idx"
	"github.com/aussiebroadwan/researchdesk/pkg/slogx"
)

type UserService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
	Tokens *TokenService
}

type RegisterInput struct {
	Name               string `json:"name" validate:"min=2"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"min=6"`
	Role               string `json:"role" validate:"required,oneof=researcher guide"`
	RegistrationNumber string `json:"registrationNumber"`
	FacultyID          string `json:"facultyId"`
	PhoneNumber        string `json:"phoneNumber"`
	Department         string `json:"department"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

// UpdateProfileInput fields are optional. Email is accepted so clients can
// send the whole profile back, but it is never changed.
type UpdateProfileInput struct {
	Name        *string `json:"name" validate:"omitnil,min=2"`
	Email       *string `json:"email" validate:"omitnil,email"`
	Password    *string `json:"password" validate:"omitnil,min=6"`
	PhoneNumber *string `json:"phoneNumber"`
	Department  *string `json:"department"`
	Avatar      *string `json:"avatar"`
}

// AuthResult is a user profile with a freshly minted token.
type AuthResult struct {
	User  domain.User
	Token string
}

// Register creates an account and signs the caller in.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.RegistrationNumber = strings.TrimSpace(in.RegistrationNumber)
	in.FacultyID = strings.TrimSpace(in.FacultyID)

	ve := &ValidationError{}
	validateStruct(ve, "", in)
	switch domain.Role(in.Role) {
	case domain.RoleResearcher:
		if in.RegistrationNumber == "" {
			ve.add("registrationNumber", "Registration number is required for researchers")
		}
		in.FacultyID = ""
	case domain.RoleGuide:
		if in.FacultyID == "" {
			ve.add("facultyId", "Faculty ID is required for guides")
		}
		in.RegistrationNumber = ""
	}
	if err := ve.orNil(); err != nil {
		return AuthResult{}, err
	}

	_, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return AuthResult{}, ErrConflict
	case !errors.Is(err, store.ErrNotFound):
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	u := domain.User{
		ID:                 idx.New().String(),
		Email:              in.Email,
		Name:               in.Name,
		PasswordHash:       hash,
		Role:               domain.Role(in.Role),
		RegistrationNumber: in.RegistrationNumber,
		FacultyID:          in.FacultyID,
		PhoneNumber:        in.PhoneNumber,
		Department:         in.Department,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, store.ErrAlreadyExists) {
			return AuthResult{}, ErrConflict
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	log.Info("user registered", slog.String("user_id", u.ID), slog.String("role", string(u.Role)))
	return AuthResult{User: u, Token: token}, nil
}

// Login checks the credentials. Unknown emails and wrong passwords fail the
// same way and cost the same time.
func (s *UserService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	in.Email = normalizeEmail(in.Email)
	ve := &ValidationError{}
	validateStruct(ve, "", in)
	if err := ve.orNil(); err != nil {
		return AuthResult{}, err
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Hasher.VerifyDummy(in.Password)
			log.Info("login failed", slog.String("reason", "unknown_email"))
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.Hasher.Verify(in.Password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatch) {
			log.Error("stored password hash unusable", slog.String("user_id", u.ID), slog.Any("error", err))
		}
		log.Info("login failed", slog.String("user_id", u.ID), slog.String("reason", "bad_password"))
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	return AuthResult{User: u, Token: token}, nil
}

// GetProfile returns the caller's stored profile.
func (s *UserService) GetProfile(ctx context.Context, id domain.Identity) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// UpdateProfile overwrites the supplied, non-empty fields and reissues the
// token so it carries the new name.
func (s *UserService) UpdateProfile(ctx context.Context, id domain.Identity, in UpdateProfileInput) (AuthResult, error) {
	ve := &ValidationError{}
	validateStruct(ve, "", in)
	if err := ve.orNil(); err != nil {
		return AuthResult{}, err
	}

	var patch domain.UserPatch
	nonEmpty := func(v *string) *string {
		if v == nil || strings.TrimSpace(*v) == "" {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	patch.Name = nonEmpty(in.Name)
	patch.PhoneNumber = nonEmpty(in.PhoneNumber)
	patch.Department = nonEmpty(in.Department)
	patch.Avatar = nonEmpty(in.Avatar)

	if in.Password != nil && *in.Password != "" {
		hash, err := s.Hasher.Hash(*in.Password)
		if err != nil {
			return AuthResult{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if !patch.Empty() {
		if err := s.Store.Users().UpdateUser(ctx, id.UserID, patch); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return AuthResult{}, ErrUserNotFound
			}
			return AuthResult{}, fmt.Errorf("update user: %w", err)
		}
	}

	u, err := s.GetProfile(ctx, id)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	slogx.FromContext(ctx).Info("profile updated", slog.String("user_id", u.ID))
	return AuthResult{User: u, Token: token}, nil
}
