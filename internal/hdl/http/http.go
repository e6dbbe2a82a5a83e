package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	_ "github.com/JMURv/iptv-gateway/api/rest/v1"
	"github.com/JMURv/iptv-gateway/internal/auth/jwt"
	"github.com/JMURv/iptv-gateway/internal/ctrl"
	mid "github.com/JMURv/iptv-gateway/internal/hdl/http/middleware"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	"github.com/JMURv/iptv-gateway/internal/stream"
	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	router *chi.Mux
	au     jwt.Port
	srv    *http.Server
	ctrl   ctrl.AppCtrl
	proxy  *stream.Proxy
}

func New(au jwt.Port, ctrl ctrl.AppCtrl, proxy *stream.Proxy) *Handler {
	return &Handler{
		router: chi.NewRouter(),
		au:     au,
		ctrl:   ctrl,
		proxy:  proxy,
	}
}

func (h *Handler) Start(port int) {
	h.router.Use(
		mid.Logger(zap.L()),
		middleware.StripSlashes,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		mid.Prometheus,
		mid.OT,
	)

	h.RegisterAuthRoutes()
	h.RegisterUserRoutes()
	h.RegisterSessionRoutes()
	h.RegisterSyncRoutes()
	h.RegisterPlaylistRoutes()
	h.RegisterStreamRoutes()

	h.router.Get("/swagger/*", httpSwagger.WrapHandler)
	h.router.Get(
		"/health", func(w http.ResponseWriter, r *http.Request) {
			utils.SuccessResponse(w, http.StatusOK, "OK")
		},
	)

	// Media streams can outlive any sane write deadline, so the server
	// keeps only a read timeout.
	h.srv = &http.Server{
		Handler:     h.router,
		Addr:        fmt.Sprintf(":%v", port),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	zap.L().Info(
		"Starting HTTP server",
		zap.String("addr", h.srv.Addr),
	)

	err := h.srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		zap.L().Error("Server error", zap.Error(err))
	}
}

func (h *Handler) Close(ctx context.Context) error {
	return h.srv.Shutdown(ctx)
}
