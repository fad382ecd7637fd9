package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ppc-flight-recorder/internal/api/handler/mocks"
	"github.com/vfg2006/ppc-flight-recorder/internal/config"
	"github.com/vfg2006/ppc-flight-recorder/internal/domain"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/authenticating"
	"github.com/vfg2006/ppc-flight-recorder/internal/usecases/syncing"
	"github.com/vfg2006/ppc-flight-recorder/pkg/apiErrors"
	"github.com/vfg2006/ppc-flight-recorder/pkg/utils"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "s3nha-forte"

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	return &config.Config{
		Server: config.Server{AllowedOrigins: []string{"http://localhost:3000"}},
		Auth: config.Auth{
			Secret:            "segredo-de-teste",
			AdminUser:         "admin",
			AdminPasswordHash: string(hash),
		},
	}
}

type testServer struct {
	handler   http.Handler
	scheduler *mocks.MockSyncScheduler
	token     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := testConfig(t)
	auth := authenticating.NewService(cfg.Auth)

	token, err := auth.LoginUser("admin", testPassword)
	require.NoError(t, err)

	scheduler := mocks.NewMockSyncScheduler(ctrl)
	return &testServer{
		handler:   NewHandler(cfg, auth, scheduler),
		scheduler: scheduler,
		token:     token,
	}
}

func (s *testServer) do(method, path, body string, authorized bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorized {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, utils.JSON.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/healthcheck", "", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "login válido devolve token",
			body: `{"username":"admin","password":"s3nha-forte"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var resp map[string]string
				require.NoError(t, utils.JSON.NewDecoder(rec.Body).Decode(&resp))
				assert.NotEmpty(t, resp["token"])
			},
		},
		{
			name: "senha incorreta",
			body: `{"username":"admin","password":"errada"}`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusUnauthorized, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidCredentials, decodeError(t, rec).Code)
			},
		},
		{
			name: "corpo inválido",
			body: `{`,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.validate(t, s.do(http.MethodPost, "/v1/login", tt.body, false))
		})
	}
}

func TestGetSyncSchedule(t *testing.T) {
	t.Run("sem token", func(t *testing.T) {
		s := newTestServer(t)

		rec := s.do(http.MethodGet, "/v1/sync/schedule", "", false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidToken, decodeError(t, rec).Code)
	})

	t.Run("token inválido", func(t *testing.T) {
		s := newTestServer(t)
		s.token = "nao-e-um-jwt"

		rec := s.do(http.MethodGet, "/v1/sync/schedule", "", true)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin recebe o status do agendador", func(t *testing.T) {
		s := newTestServer(t)
		s.scheduler.EXPECT().GetStatus(gomock.Any()).Return(map[string]any{
			"scheduler_running": true,
			"timezone":          "America/Sao_Paulo",
		})

		rec := s.do(http.MethodGet, "/v1/sync/schedule", "", true)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, utils.JSON.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, true, resp["scheduler_running"])
		assert.Equal(t, "America/Sao_Paulo", resp["timezone"])
	})
}

func TestRunSync(t *testing.T) {
	okRun := &domain.SyncRun{
		ID:             "run-1",
		Status:         domain.SyncRunOK,
		SnapshotDates:  []string{"2024-03-01"},
		CompletedDates: []string{"2024-03-01"},
		Projects:       []string{"the-pinch"},
	}

	tests := []struct {
		name     string
		body     string
		setup    func(s *mocks.MockSyncScheduler)
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "corpo vazio executa ontem com todos os domínios",
			body: "",
			setup: func(s *mocks.MockSyncScheduler) {
				s.EXPECT().TriggerManualSync(gomock.Any(), "", domain.ScopeAll).Return(okRun, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var resp map[string]any
				require.NoError(t, utils.JSON.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, "ok", resp["status"])
				assert.Equal(t, "run-1", resp["run_id"])
				assert.Equal(t, []any{"2024-03-01"}, resp["snapshot_dates"])
				assert.Equal(t, false, resp["control_state_only"])
			},
		},
		{
			name: "data e escopo são repassados e ecoados",
			body: `{"date":"2024-03-01","control_state_keyword_only":true}`,
			setup: func(s *mocks.MockSyncScheduler) {
				s.EXPECT().TriggerManualSync(gomock.Any(), "2024-03-01", domain.ScopeKeyword).Return(okRun, nil)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"control_state_keyword_only":true`)
			},
		},
		{
			name:  "data inválida",
			body:  `{"date":"01/03/2024"}`,
			setup: func(s *mocks.MockSyncScheduler) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
			},
		},
		{
			name:  "escopos conflitantes",
			body:  `{"control_state_only":true,"control_state_device_only":true}`,
			setup: func(s *mocks.MockSyncScheduler) {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrConflictingScopes, decodeError(t, rec).Code)
			},
		},
		{
			name: "sync já em execução",
			body: "",
			setup: func(s *mocks.MockSyncScheduler) {
				s.EXPECT().TriggerManualSync(gomock.Any(), "", domain.ScopeAll).Return(nil, syncing.ErrSyncAlreadyRunning)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, apiErrors.ErrSyncAlreadyRunning, decodeError(t, rec).Code)
			},
		},
		{
			name: "falha do provedor vira 500 com detalhes",
			body: "",
			setup: func(s *mocks.MockSyncScheduler) {
				err := &syncing.ProviderError{Domain: domain.Keyword, Account: "the-pinch", Err: errors.New("quota")}
				s.EXPECT().TriggerManualSync(gomock.Any(), "", domain.ScopeAll).Return(nil, err)
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)

				apiErr := decodeError(t, rec)
				assert.Equal(t, apiErrors.ErrSyncFailed, apiErr.Code)
				assert.Contains(t, apiErr.Details, "quota")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			tt.setup(s.scheduler)
			tt.validate(t, s.do(http.MethodPost, "/v1/sync/run", tt.body, true))
		})
	}
}

func TestRotasDesconhecidas(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/v1/nao-existe", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)

	rec = s.do(http.MethodDelete, "/v1/sync/run", "", true)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCors(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/sync/run", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/sync/run", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
