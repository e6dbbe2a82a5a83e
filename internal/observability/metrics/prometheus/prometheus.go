package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of requests by status and operation",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"status", "op"},
)

var activeStreams = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "active_streams",
		Help: "Number of media streams currently being proxied",
	},
)

func ObserveRequest(d time.Duration, status int, op string) {
	requestDuration.With(
		prometheus.Labels{"status": strconv.Itoa(status), "op": op},
	).Observe(d.Seconds())
}

func StreamStarted()  { activeStreams.Inc() }
func StreamFinished() { activeStreams.Dec() }

type Metric struct {
	srv *http.Server
}

func New(port int) *Metric {
	prometheus.MustRegister(requestDuration, activeStreams)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Metric{
		srv: &http.Server{
			Addr:    fmt.Sprintf(":%v", port),
			Handler: mux,
		},
	}
}

func (m *Metric) Start(ctx context.Context) {
	go func() {
		zap.L().Info("Starting metrics server", zap.String("addr", m.srv.Addr))
		if err := m.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Error("Metrics server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	if err := m.srv.Shutdown(context.Background()); err != nil {
		zap.L().Debug("Error shutting down metrics server", zap.Error(err))
	}
	zap.L().Info("Metrics server has been stopped")
}
