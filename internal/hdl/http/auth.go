package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/iptv-gateway/internal/auth"
	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/dto"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
)

func (h *Handler) RegisterAuthRoutes() {
	h.router.Post("/api/auth/login", h.login)
	h.router.Post("/api/auth/validate", h.validateCredentials)
}

// login godoc
//
//	@Summary		Authenticate using username & password
//	@Description	Verify credentials and set the JWT access cookie
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.CredentialsRequest	true	"Login credentials"
//	@Success		200		{object}	dto.TokenResponse
//	@Failure		400		{object}	utils.ErrorResponse
//	@Failure		401		{object}	utils.ErrorResponse
//	@Failure		500		{object}	utils.ErrorResponse
//	@Router			/api/auth/login [post]
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req := &dto.CredentialsRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.Authenticate(r.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) ||
			errors.Is(err, auth.ErrAccountDisabled) ||
			errors.Is(err, auth.ErrAccountExpired) {
			utils.ErrResponse(w, http.StatusUnauthorized, err)
			return
		}

		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	http.SetCookie(
		w, &http.Cookie{
			Name:     config.AccessCookieName,
			Value:    res.Access,
			MaxAge:   int(config.AccessTokenDuration.Seconds()),
			HttpOnly: true,
			Path:     "/",
			SameSite: http.SameSiteStrictMode,
		},
	)

	utils.SuccessResponse(w, http.StatusOK, res)
}

// validateCredentials godoc
//
//	@Summary		Validate subscriber credentials
//	@Description	Distinguishes invalid identity from a valid account that cannot connect
//	@Tags			Authentication
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.CredentialsRequest	true	"Credentials"
//	@Success		200		{object}	dto.AuthResult
//	@Failure		400		{object}	utils.ErrorResponse
//	@Failure		500		{object}	utils.ErrorResponse
//	@Router			/api/auth/validate [post]
func (h *Handler) validateCredentials(w http.ResponseWriter, r *http.Request) {
	req := &dto.CredentialsRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	res, err := h.ctrl.ValidateCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}
