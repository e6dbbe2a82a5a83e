package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JMURv/iptv-gateway/internal/dto"
	"github.com/JMURv/iptv-gateway/internal/stream"
	"github.com/JMURv/iptv-gateway/tests/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestHandler(t *testing.T) (*Handler, *mocks.MockAppCtrl, *mocks.MockPort) {
	t.Helper()

	mock := gomock.NewController(t)
	t.Cleanup(mock.Finish)

	mctrl := mocks.NewMockAppCtrl(mock)
	mau := mocks.NewMockPort(mock)
	return New(mau, mctrl, stream.NewProxy()), mctrl, mau
}

func TestHandler_GetPlaylist(t *testing.T) {
	uid := uuid.New()

	allowed := &dto.AuthResult{
		Valid: true, CanConnect: true, UserID: uid, MaxDevices: 2,
	}

	tests := []struct {
		name           string
		mock           func(mctrl *mocks.MockAppCtrl)
		expectedStatus int
	}{
		{
			name: "InvalidCredentials",
			mock: func(mctrl *mocks.MockAppCtrl) {
				mctrl.EXPECT().ValidateCredentials(gomock.Any(), "alice", "bad").
					Return(&dto.AuthResult{Valid: false, Message: "Invalid username or password"}, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "AccountBlocked",
			mock: func(mctrl *mocks.MockAppCtrl) {
				mctrl.EXPECT().ValidateCredentials(gomock.Any(), "alice", "bad").
					Return(
						&dto.AuthResult{
							Valid: true, CanConnect: false, Message: "Account is disabled",
						}, nil,
					)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "DeviceLimit",
			mock: func(mctrl *mocks.MockAppCtrl) {
				mctrl.EXPECT().ValidateCredentials(gomock.Any(), "alice", "bad").
					Return(allowed, nil)
				mctrl.EXPECT().Admit(gomock.Any(), uid, 2, gomock.Any()).
					Return(
						&dto.AdmitResult{
							Allowed: false, Message: "Device limit reached (2/2)",
							Current: 2, Max: 2,
						}, nil,
					)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Success",
			mock: func(mctrl *mocks.MockAppCtrl) {
				mctrl.EXPECT().ValidateCredentials(gomock.Any(), "alice", "bad").
					Return(allowed, nil)
				mctrl.EXPECT().Admit(gomock.Any(), uid, 2, gomock.Any()).
					Return(&dto.AdmitResult{Allowed: true, Current: 1, Max: 2}, nil)
				mctrl.EXPECT().GeneratePlaylist("alice", "bad").
					Return("#EXTM3U\nhttp://gw.example.com/alice/bad/1001\n")
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				h, mctrl, _ := newTestHandler(t)
				h.RegisterPlaylistRoutes()
				tt.mock(mctrl)

				req := httptest.NewRequest(http.MethodGet, "/playlist/alice/bad.m3u", nil)
				req.Header.Set("User-Agent", "TiviMate/4.7.0")
				req.RemoteAddr = "10.0.0.1:51234"

				rec := httptest.NewRecorder()
				h.router.ServeHTTP(rec, req)

				assert.Equal(t, tt.expectedStatus, rec.Code)
				if tt.expectedStatus == http.StatusOK {
					assert.Equal(t, "audio/x-mpegurl", rec.Header().Get("Content-Type"))
					assert.Equal(
						t,
						`attachment; filename="playlist.m3u"`,
						rec.Header().Get("Content-Disposition"),
					)
					assert.Contains(t, rec.Header().Get("Cache-Control"), "no-cache")
					assert.Contains(t, rec.Body.String(), "#EXTM3U")
				}
			},
		)
	}
}

func TestHandler_ValidateStream(t *testing.T) {
	uid := uuid.New()

	gate := func(mctrl *mocks.MockAppCtrl) {
		mctrl.EXPECT().ValidateCredentials(gomock.Any(), "alice", "pw").
			Return(&dto.AuthResult{Valid: true, CanConnect: true, UserID: uid, MaxDevices: 2}, nil)
		mctrl.EXPECT().Admit(gomock.Any(), uid, 2, gomock.Any()).
			Return(&dto.AdmitResult{Allowed: true, Current: 1, Max: 2}, nil)
	}

	t.Run(
		"Success", func(t *testing.T) {
			h, mctrl, _ := newTestHandler(t)
			h.RegisterStreamRoutes()
			gate(mctrl)
			mctrl.EXPECT().ResolveStream(gomock.Any(), gomock.Any(), "2002").
				Return("http://origin.example.com/movie/u/p/2002.mkv", nil)

			req := httptest.NewRequest(
				http.MethodGet, "/api/auth/validate-stream/movie/alice/pw/2002.mkv", nil,
			)
			rec := httptest.NewRecorder()
			h.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(
				t,
				"http://origin.example.com/movie/u/p/2002.mkv",
				rec.Header().Get("X-Origin-URL"),
			)
		},
	)

	t.Run(
		"UnknownKind", func(t *testing.T) {
			h, _, _ := newTestHandler(t)
			h.RegisterStreamRoutes()

			req := httptest.NewRequest(
				http.MethodGet, "/api/auth/validate-stream/radio/alice/pw/2002", nil,
			)
			rec := httptest.NewRecorder()
			h.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		},
	)
}
