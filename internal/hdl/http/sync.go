package http

import (
	"errors"
	"net/http"

	"github.com/JMURv/iptv-gateway/internal/ctrl"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	mid "github.com/JMURv/iptv-gateway/internal/hdl/http/middleware"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) RegisterSyncRoutes() {
	h.router.Route(
		"/api/sync", func(r chi.Router) {
			r.Use(mid.Auth(h.au, mid.AuthOpts{AdminOnly: true}))

			r.Post("/", h.triggerSync)
			r.Get("/", h.getSyncMeta)
			r.Post("/reload-template", h.reloadTemplate)
			r.Get("/stats", h.systemStats)
		},
	)
}

// triggerSync godoc
//
//	@Summary		Run an ingestion cycle now
//	@Description	Downloads the provider feed, replaces the catalog and republishes the template
//	@Tags			Sync
//	@Produce		json
//	@Success		200	{object}	dto.SyncSummary
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sync [post]
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	res, err := h.ctrl.TriggerSync(r.Context())
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}

// getSyncMeta godoc
//
//	@Summary		Last completed sync
//	@Tags			Sync
//	@Produce		json
//	@Success		200	{object}	models.SyncMeta
//	@Failure		404	{object}	utils.ErrorResponse	"never synced"
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sync [get]
func (h *Handler) getSyncMeta(w http.ResponseWriter, r *http.Request) {
	res, err := h.ctrl.GetSyncMeta(r.Context())
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

// reloadTemplate godoc
//
//	@Summary		Reload the playlist template from disk
//	@Tags			Sync
//	@Success		200
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sync/reload-template [post]
func (h *Handler) reloadTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.ctrl.ReloadTemplate(r.Context()); err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, err)
		return
	}

	utils.StatusResponse(w, http.StatusOK)
}

// systemStats godoc
//
//	@Summary		System stats
//	@Description	Account, session and per-class catalog counts
//	@Tags			Sync
//	@Produce		json
//	@Success		200	{object}	dto.SystemStatsResponse
//	@Failure		500	{object}	utils.ErrorResponse
//	@Router			/api/sync/stats [get]
func (h *Handler) systemStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.ctrl.SystemStats(r.Context())
	if err != nil {
		utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
		return
	}

	utils.SuccessResponse(w, http.StatusOK, res)
}
