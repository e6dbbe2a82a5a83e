package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/JMURv/iptv-gateway/internal/ctrl"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	mid "github.com/JMURv/iptv-gateway/internal/hdl/http/middleware"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultSessionListLimit = 500

func (h *Handler) RegisterSessionRoutes() {
	h.router.Route(
		"/api/sessions", func(r chi.Router) {
			r.Use(mid.Auth(h.au, mid.AuthOpts{AdminOnly: true}))

			r.Get("/", h.listAllSessions)
			r.Get("/{id}", h.listDevices)
			r.Delete("/{id}", h.disconnectAll)
			r.Delete("/{id}/{fingerprint}", h.disconnect)
		},
	)
}

// listAllSessions godoc
//
//	@Summary		List all live device sessions
//	@Tags			Session
//	@Produce		json
//	@Param			limit	query		int	false	"Max rows"	default(500)
//	@Success		200		{array}		models.Session
//	@Failure		500		{object}	utils.ErrorResponse
//	@Router			/api/sessions [get]
func (h *Handler) listAllSessions(w http.ResponseWriter, r *http.Request) {
	limit := defaultSessionListLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	res, err := h.ctrl.ListAllSessions(r.Context(), limit)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// listDevices godoc
//
//	@Summary		List an account's devices
//	@Tags			Session
//	@Produce		json
//	@Param			id	path		string	true	"Account ID"
//	@Success		200	{array}		models.Session
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sessions/{id} [get]
func (h *Handler) listDevices(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	res, err := h.ctrl.ListDevices(r.Context(), uid)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// disconnect godoc
//
//	@Summary		Disconnect one device
//	@Tags			Session
//	@Param			id			path	string	true	"Account ID"
//	@Param			fingerprint	path	string	true	"Device fingerprint"
//	@Success		204
//	@Failure		404	{object}	utils.ErrorResponse
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sessions/{id}/{fingerprint} [delete]
func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	if err = h.ctrl.Disconnect(r.Context(), uid, chi.URLParam(r, "fingerprint")); err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.StatusResponse(w, http.StatusNoContent)
}

// disconnectAll godoc
//
//	@Summary		Disconnect every device of an account
//	@Tags			Session
//	@Produce		json
//	@Param			id	path		string	true	"Account ID"
//	@Success		200	{object}	map[string]int64
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sessions/{id} [delete]
func (h *Handler) disconnectAll(w http.ResponseWriter, r *http.Request) {
	uid, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrFailedToParseUUID)
		return
	}

	count, err := h.ctrl.DisconnectAll(r.Context(), uid)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, map[string]int64{"disconnected": count})
}
