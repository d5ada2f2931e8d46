package http

import (
	"net/http"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/service"
	"github.com/aussiebroadwan/researchdesk/pkg/httpx"
)

type AuthHandler struct {
	UserService  *service.UserService
	MaxBodyBytes int64
}

// HandleRegister godoc
//
//	@Summary		Register a user
//	@Description	Creates a researcher or guide account and returns a bearer token.
//	@Description	Researchers must send registrationNumber and guides must send facultyId.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		researchsdk.RegisterRequest	true	"Registration"
//	@Success		201		{object}	researchsdk.AuthResponse
//	@Failure		400		{object}	researchsdk.ErrorResponse	"validation failed or user already exists"
//	@Failure		429		{object}	researchsdk.ErrorResponse
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := httpx.DecodeJSON(w, r, h.MaxBodyBytes, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.UserService.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(res))
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges an email and password for a bearer token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		researchsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	researchsdk.AuthResponse
//	@Failure		400		{object}	researchsdk.ErrorResponse
//	@Failure		401		{object}	researchsdk.ErrorResponse	"Invalid email or password"
//	@Failure		429		{object}	researchsdk.ErrorResponse
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := httpx.DecodeJSON(w, r, h.MaxBodyBytes, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.UserService.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(res))
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Description	Returns the profile of the token holder.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	researchsdk.UserResponse
//	@Failure		401	{object}	researchsdk.ErrorResponse
//	@Failure		404	{object}	researchsdk.ErrorResponse	"User not found"
//	@Security		BearerAuth
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetProfile(r.Context(), identityFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdateProfile godoc
//
//	@Summary		Update profile
//	@Description	Overwrites the supplied profile fields and reissues the token. The email cannot be changed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		researchsdk.UpdateProfileRequest	true	"Profile fields"
//	@Success		200		{object}	researchsdk.AuthResponse
//	@Failure		400		{object}	researchsdk.ErrorResponse
//	@Failure		401		{object}	researchsdk.ErrorResponse
//	@Failure		404		{object}	researchsdk.ErrorResponse	"User not found"
//	@Security		BearerAuth
//	@Router			/api/auth/profile [put].
func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateProfileInput
	if err := httpx.DecodeJSON(w, r, h.MaxBodyBytes, &in); err != nil {
		writeDecodeError(w, err)
		return
	}

	res, err := h.UserService.UpdateProfile(r.Context(), identityFrom(r), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(res))
}
