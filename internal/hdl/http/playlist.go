package http

import (
	"net/http"

	"github.com/JMURv/iptv-gateway/internal/hdl"
	mid "github.com/JMURv/iptv-gateway/internal/hdl/http/middleware"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *Handler) RegisterPlaylistRoutes() {
	h.router.With(mid.Device).Get("/playlist/{username}/{password}.m3u", h.getPlaylist)
}

// getPlaylist godoc
//
//	@Summary		Personalized playlist
//	@Description	Validates credentials, admits the device and streams the subscriber's playlist
//	@Tags			Playlist
//	@Produce		audio/x-mpegurl
//	@Param			username	path	string	true	"Subscriber username"
//	@Param			password	path	string	true	"Subscriber password"
//	@Success		200	{string}	string	"M3U document"
//	@Failure		401	{object}	utils.ErrorResponse	"invalid credentials"
//	@Failure		403	{object}	utils.ErrorResponse	"account blocked or device limit"
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/playlist/{username}/{password}.m3u [get]
func (h *Handler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	password := chi.URLParam(r, "password")

	if !h.gateStream(w, r, username, password) {
		return
	}

	body := h.ctrl.GeneratePlaylist(username, password)

	w.Header().Set("Content-Type", "audio/x-mpegurl")
	w.Header().Set("Content-Disposition", `attachment; filename="playlist.m3u"`)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		zap.L().Debug("failed to write playlist", zap.Error(err))
	}
}

// gateStream runs the validate-then-admit gate shared by the playlist
// and stream endpoints. It writes the refusal response itself and
// reports whether the caller may proceed.
func (h *Handler) gateStream(
	w http.ResponseWriter,
	r *http.Request,
	username, password string,
) bool {
	d, ok := utils.ParseDeviceByRequest(r.Context())
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrNoDeviceInfo)
		return false
	}

	auth, err := h.ctrl.ValidateCredentials(r.Context(), username, password)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return false
	}

	if !auth.Valid {
		utils.ErrResponse(w, http.StatusUnauthorized, errMessage(auth.Message))
		return false
	}
	if !auth.CanConnect {
		utils.ErrResponse(w, http.StatusForbidden, errMessage(auth.Message))
		return false
	}

	admit, err := h.ctrl.Admit(r.Context(), auth.UserID, auth.MaxDevices, &d)
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return false
	}

	if !admit.Allowed {
		utils.ErrResponse(w, http.StatusForbidden, errMessage(admit.Message))
		return false
	}

	return true
}

type errMessage string

func (e errMessage) Error() string { return string(e) }
