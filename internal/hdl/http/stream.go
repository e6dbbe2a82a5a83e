package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JMURv/iptv-gateway/internal/ctrl"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	mid "github.com/JMURv/iptv-gateway/internal/hdl/http/middleware"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	md "github.com/JMURv/iptv-gateway/internal/models"
	metrics "github.com/JMURv/iptv-gateway/internal/observability/metrics/prometheus"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterStreamRoutes() {
	h.router.Group(
		func(r chi.Router) {
			r.Use(mid.Device)

			r.Get("/live/{username}/{password}/{id}", h.streamKind(md.KindLive))
			r.Get("/movie/{username}/{password}/{id}", h.streamKind(md.KindMovie))
			r.Get("/series/{username}/{password}/{id}", h.streamKind(md.KindSeries))

			// Xtream-style root form used by most IPTV players.
			r.Get("/{username}/{password}/{id}", h.streamKind(md.KindLive))
		},
	)

	// Helper for nginx auth_request: answers with the origin URL in a
	// header so nginx can proxy the media itself.
	h.router.With(mid.Device).Get(
		"/api/auth/validate-stream/{kind}/{username}/{password}/{id}",
		h.validateStream,
	)
}

// stripExt drops a trailing ".ext" from a public stream id.
func stripExt(id string) string {
	if i := strings.LastIndex(id, "."); i > 0 {
		return id[:i]
	}
	return id
}

func parseKind(s string) (md.ContentKind, bool) {
	switch md.ContentKind(s) {
	case md.KindLive, md.KindMovie, md.KindSeries:
		return md.ContentKind(s), true
	}
	return "", false
}

// streamKind godoc
//
//	@Summary		Proxy a media stream
//	@Description	Validates credentials, admits the device, resolves the origin and relays the stream
//	@Tags			Stream
//	@Param			username	path	string	true	"Subscriber username"
//	@Param			password	path	string	true	"Subscriber password"
//	@Param			id			path	string	true	"Public stream id"
//	@Success		200	{string}	string	"media stream"
//	@Failure		401	{object}	utils.ErrorResponse
//	@Failure		403	{object}	utils.ErrorResponse
//	@Failure		404	{object}	utils.ErrorResponse
//	@Failure		502	{object}	utils.ErrorResponse	"origin unreachable"
//	@Router			/live/{username}/{password}/{id} [get]
func (h *Handler) streamKind(kind md.ContentKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		password := chi.URLParam(r, "password")

		if !h.gateStream(w, r, username, password) {
			return
		}

		origin, err := h.ctrl.ResolveStream(r.Context(), kind, stripExt(chi.URLParam(r, "id")))
		if err != nil {
			if errors.Is(err, ctrl.ErrNotFound) {
				utils.ErrResponse(w, http.StatusNotFound, err)
				return
			}
			utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
			return
		}

		metrics.StreamStarted()
		defer metrics.StreamFinished()

		h.proxy.Serve(w, r, origin)
	}
}

// validateStream godoc
//
//	@Summary		Validate a stream request for nginx
//	@Description	auth_request helper; returns the origin URL in X-Origin-URL on success
//	@Tags			Stream
//	@Param			kind		path	string	true	"live, movie or series"
//	@Param			username	path	string	true	"Subscriber username"
//	@Param			password	path	string	true	"Subscriber password"
//	@Param			id			path	string	true	"Public stream id"
//	@Success		200
//	@Failure		400	{object}	utils.ErrorResponse
//	@Failure		401	{object}	utils.ErrorResponse
//	@Failure		403	{object}	utils.ErrorResponse
//	@Failure		404	{object}	utils.ErrorResponse
//	@Router			/api/auth/validate-stream/{kind}/{username}/{password}/{id} [get]
func (h *Handler) validateStream(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(chi.URLParam(r, "kind"))
	if !ok {
		utils.ErrResponse(w, http.StatusBadRequest, hdl.ErrUnknownContentKind)
		return
	}

	if !h.gateStream(w, r, chi.URLParam(r, "username"), chi.URLParam(r, "password")) {
		return
	}

	origin, err := h.ctrl.ResolveStream(r.Context(), kind, stripExt(chi.URLParam(r, "id")))
	if err != nil {
		if errors.Is(err, ctrl.ErrNotFound) {
			utils.ErrResponse(w, http.StatusNotFound, err)
			return
		}
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	w.Header().Set("X-Origin-URL", origin)
	utils.StatusResponse(w, http.StatusOK)
}
