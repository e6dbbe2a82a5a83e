package utils

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/JMURv/iptv-gateway/internal/config"
	"github.com/JMURv/iptv-gateway/internal/dto"
	"github.com/JMURv/iptv-gateway/internal/hdl"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var validate = validator.New()

type Response struct {
	Data any `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func SuccessResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&Response{
			Data: data,
		},
	)
}

func SuccessPaginatedResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func StatusResponse(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
}

func ErrResponse(w http.ResponseWriter, statusCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(
		&ErrorResponse{
			Error: err.Error(),
		},
	)
}

// ParseAndValidate decodes the JSON body into req and runs struct
// validation, answering 400 itself when either step fails.
func ParseAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		zap.L().Debug("failed to decode request", zap.Error(err))
		ErrResponse(w, http.StatusBadRequest, hdl.ErrDecodeRequest)
		return false
	}

	if err := validate.Struct(req); err != nil {
		ErrResponse(w, http.StatusBadRequest, err)
		return false
	}

	return true
}

// ParseDeviceByRequest pulls the device info placed in the context by
// the Device middleware.
func ParseDeviceByRequest(ctx context.Context) (dto.DeviceRequest, bool) {
	d, ok := ctx.Value(config.DeviceKey).(dto.DeviceRequest)
	return d, ok
}

// ClientIP prefers the reverse proxy headers and falls back to the
// connection's remote address.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func ParsePaginationValues(r *http.Request) (int, int) {
	page, size := config.DefaultPage, config.DefaultSize

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 {
		size = s
	}

	return page, size
}

func ParseFiltersByURL(r *http.Request) map[string]any {
	filters := make(map[string]any)

	if v := r.URL.Query().Get("is_active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters["is_active"] = b
		}
	}
	if v := r.URL.Query().Get("role"); v != "" {
		filters["role"] = v
	}

	return filters
}
