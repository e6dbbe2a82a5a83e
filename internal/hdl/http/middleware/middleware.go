package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JMURv/iptv-gateway/internal/auth/jwt"
	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/dto"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	"github.com/JMURv/iptv-gateway/internal/hdl/http/utils"
	md "github.com/JMURv/iptv-gateway/internal/models"
	metrics "github.com/JMURv/iptv-gateway/internal/observability/metrics/prometheus"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type AuthOpts struct {
	AdminOnly bool
}

// Auth validates the access token from the cookie or the Authorization
// header and puts uid and role into the request context.
func Auth(au jwt.Port, opts AuthOpts) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				token := ""
				if access, err := r.Cookie(config.AccessCookieName); err == nil {
					token = access.Value
				} else if !errors.Is(err, http.ErrNoCookie) {
					zap.L().Error("failed to get access cookie", zap.Error(err))
					utils.ErrResponse(w, http.StatusInternalServerError, hdl.ErrInternal)
					return
				}

				if token == "" {
					const prefix = "Bearer "
					if h := r.Header.Get("Authorization"); len(h) > len(prefix) && h[:len(prefix)] == prefix {
						token = h[len(prefix):]
					}
				}

				if token == "" {
					utils.ErrResponse(w, http.StatusUnauthorized, http.ErrNoCookie)
					return
				}

				claims, err := au.ParseClaims(r.Context(), token)
				if err != nil {
					utils.ErrResponse(w, http.StatusForbidden, err)
					return
				}

				if opts.AdminOnly && claims.Role != md.RoleAdmin {
					utils.ErrResponse(w, http.StatusForbidden, hdl.ErrAdminOnly)
					return
				}

				ctx := context.WithValue(r.Context(), config.UidKey, claims.UID)
				ctx = context.WithValue(ctx, config.RoleKey, claims.Role)
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}

// Device captures the caller's IP and User-Agent so handlers can run
// fingerprinting without touching the raw request.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(
				r.Context(), config.DeviceKey, dto.DeviceRequest{
					IP: utils.ClientIP(r),
					UA: r.UserAgent(),
				},
			)
			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}

type LoggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func NewLoggingResponseWriter(w http.ResponseWriter) *LoggingResponseWriter {
	return &LoggingResponseWriter{w, http.StatusOK}
}

func (lrw *LoggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming handlers working behind the logging wrapper.
func (lrw *LoggingResponseWriter) Flush() {
	if f, ok := lrw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			s := time.Now()
			op := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

			lrw := NewLoggingResponseWriter(w)
			next.ServeHTTP(lrw, r)
			metrics.ObserveRequest(time.Since(s), lrw.statusCode, op)
		},
	)
}

func Logger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				lrw := NewLoggingResponseWriter(w)
				logger.Debug(
					"-->",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote", r.RemoteAddr),
				)

				next.ServeHTTP(lrw, r)

				logger.Info(
					"<--",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", lrw.statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("remote", r.RemoteAddr),
				)
			},
		)
	}
}

func OT(next http.Handler) http.Handler {
	return http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			span, ctx := opentracing.StartSpanFromContext(
				r.Context(), fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			)
			defer span.Finish()

			next.ServeHTTP(w, r.WithContext(ctx))
		},
	)
}
