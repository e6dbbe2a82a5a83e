package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/iptv-gateway/internal/ctrl"
	"github.com/JMURv/iptv-gateway/internal/dto"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	mid "github.com/JMURv/iptv-gateway/internal/hdl/http/middleware"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) RegisterUserRoutes() {
	h.router.Route(
		"/api/users", func(r chi.Router) {
			r.Use(mid.Auth(h.au, mid.AuthOpts{AdminOnly: true}))

			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
		},
	)
}

// listUsers godoc
//
//	@Summary		List accounts
//	@Description	Paginated account list with optional is_active and role filters
//	@Tags			User
//	@Produce		json
//	@Param			page	query		int	false	"Page number"	default(1)
//	@Param			size	query		int	false	"Page size"		default(40)
//	@Success		200		{object}	dto.PaginatedUserResponse
//	@Failure		500		{object}	utils.ErrorResponse
//	@Router			/api/users [get]
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page, size := utils.ParsePaginationValues(r)
	filters := utils.ParseFiltersByURL(r)

	res, err := h.ctrl.ListUsers(r.Context(), page, size, filters)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// createUser godoc
//
//	@Summary		Create an account
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			body	body		dto.CreateUserRequest	true	"Account payload"
//	@Success		201		{object}	dto.CreateUserResponse
//	@Failure		400		{object}	utils.ErrorResponse
//	@Failure		409		{object}	utils.ErrorResponse	"username taken"
//	@Failure		500		{object}	utils.ErrorResponse
//	@Router			/api/users [post]
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	req := &dto.CreateUserRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	id, err := h.ctrl.CreateUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, ctrl.ErrAlreadyExists) {
			utils.ErrResponse(w, http.StatusConflict, err)
			return
		}
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusCreated, dto.CreateUserResponse{ID: id})
}

// getUser godoc
//
//	@Summary		Get an account
//	@Tags			User
//	@Produce		json
//	@Param			id	path		string	true	"Account ID"
//	@Success		200	{object}	models.User
//	@Failure		404	{object}	utils.ErrorResponse
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/users/{id} [get]
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	res, err := h.ctrl.GetUserByID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// updateUser godoc
//
//	@Summary		Update an account
//	@Tags			User
//	@Accept			json
//	@Param			id		path	string					true	"Account ID"
//	@Param			body	body	dto.UpdateUserRequest	true	"Fields to update"
//	@Success		200
//	@Failure		400	{object}	utils.ErrorResponse
//	@Failure		404	{object}	utils.ErrorResponse
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/users/{id} [put]
func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	req := &dto.UpdateUserRequest{}
	if ok := utils.ParseAndValidate(w, r, req); !ok {
		return
	}

	if err = h.ctrl.UpdateUser(r.Context(), uid, req); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}
		zap.L().Debug("failed to update user", zap.Error(err))
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// deleteUser godoc
//
//	@Summary		Delete an account
//	@Description	Removes the account and all of its device sessions
//	@Tags			User
//	@Param			id	path	string	true	"Account ID"
//	@Success		204
//	@Failure		404	{object}	utils.ErrorResponse
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/users/{id} [delete]
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	if err = h.ctrl.DeleteUser(r.Context(), uid); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusNoContent)
}
