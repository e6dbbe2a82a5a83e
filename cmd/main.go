package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JMURv/iptv-gateway/internal/auth"
	"github.com/JMURv/iptv-gateway/internal/auth/jwt"
	"github.com/JMURv/iptv-gateway/internal/cache/redis"
	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/ctrl"
	handler "github.com/JMURv/iptv-gateway/internal/hdl/http"
	"github.com/JMURv/iptv-gateway/internal/ingest"
	"github.com/JMURv/iptv-gateway/internal/observability/metrics/prometheus"
	"github.com/JMURv/iptv-gateway/internal/observability/tracing/jaeger"
	"github.com/JMURv/iptv-gateway/internal/playlist"
	"github.com/JMURv/iptv-gateway/internal/repo/db"
	"github.com/JMURv/iptv-gateway/internal/repo/s3"
	"github.com/JMURv/iptv-gateway/internal/smtp"
	"github.com/JMURv/iptv-gateway/internal/stream"
	"go.uber.org/zap"
)

func mustRegisterLogger(mode string) {
	switch mode {
	case "prod":
		zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
	case "dev":
		zap.ReplaceGlobals(zap.Must(zap.NewDevelopment()))
	}
}

func main() {
	defer func() {
		if err := recover(); err != nil {
			zap.L().Panic("panic occurred", zap.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := config.MustLoad()
	mustRegisterLogger(conf.Server.Mode)

	go prometheus.New(conf.Server.Port + 5).Start(ctx)
	go jaeger.Start(ctx, conf.ServiceName, conf.Jaeger)

	cache := redis.New(conf.Redis)
	repo := db.New(conf)

	template := playlist.NewTemplateCache(conf.Sync.TemplateDir)
	if err := template.Reload(); err != nil {
		zap.L().Info("no published template yet", zap.Error(err))
	}

	pipeline := ingest.New(
		conf.Sync, repo, template, func(s ingest.Snapshot) {
			zap.L().Debug(
				"insert progress",
				zap.Int("inserted", s.Inserted),
				zap.Int("failed", s.Failed),
				zap.Float64("percent", s.Percent),
				zap.Float64("rate", s.Rate),
				zap.Duration("eta", s.ETA),
			)
		},
	)

	resolver := stream.NewResolver(repo)
	if err := resolver.Preload(ctx); err != nil {
		zap.L().Warn("failed to preload resolver cache", zap.Error(err))
	}

	var notify *smtp.Email
	if conf.Email.Enabled {
		notify = smtp.New(conf.Email)
	}

	var archive *s3.Storage
	if conf.S3.Enabled {
		archive = s3.New(conf.S3)
	}

	jwtCore := jwt.New(conf)
	svc := ctrl.New(
		repo,
		cache,
		auth.New(),
		jwtCore,
		pipeline,
		template,
		resolver,
		asNotifier(notify),
		asArchive(archive),
		conf.Server.PublicDomain,
	)
	h := handler.New(jwtCore, svc, stream.NewProxy())

	go sweepIdleSessions(ctx, svc, conf.Session)

	zap.L().Info(
		fmt.Sprintf(
			"Starting server on %v://%v:%v",
			conf.Server.Scheme,
			conf.Server.Domain,
			conf.Server.Port,
		),
	)
	go h.Start(conf.Server.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	<-c

	zap.L().Info("Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := h.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing handler", zap.Error(err))
	}

	if err := cache.Close(); err != nil {
		zap.L().Warn("Failed to close connection to Redis", zap.Error(err))
	}

	if err := repo.Close(shutdownCtx); err != nil {
		zap.L().Warn("Error closing repository", zap.Error(err))
	}
	os.Exit(0)
}

func sweepIdleSessions(ctx context.Context, svc ctrl.AppCtrl, conf config.SessionConfig) {
	t := time.NewTicker(conf.SweepInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := svc.SweepIdle(ctx, conf.IdleTimeout); err != nil {
				zap.L().Warn("idle sweep failed", zap.Error(err))
			}
		}
	}
}

// asNotifier and asArchive keep a typed nil from turning into a
// non-nil interface inside the controller.
func asNotifier(e *smtp.Email) ctrl.Notifier {
	if e == nil {
		return nil
	}
	return e
}

func asArchive(s *s3.Storage) ctrl.TemplateArchive {
	if s == nil {
		return nil
	}
	return s
}
