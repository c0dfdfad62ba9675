package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unifit_backend/internal/logger"
	"unifit_backend/internal/models"
	"unifit_backend/internal/services/dto"
	"unifit_backend/internal/session"
	"unifit_backend/internal/validator"
	"unifit_backend/pkg/apperrors"
)

// stubAuthService returns canned results so the tests pin down the
// HTTP status mapping without a database.
type stubAuthService struct {
	signUpErr  error
	signInErr  error
	signInResp *dto.SignInResponse
	current    *session.Snapshot
}

func (s *stubAuthService) SignUp(_ context.Context, _ *dto.SignUpRequest) (*models.PublicUser, error) {
	if s.signUpErr != nil {
		return nil, s.signUpErr
	}
	return &models.PublicUser{ID: "user-1", Email: "student@uni.edu"}, nil
}

func (s *stubAuthService) SignIn(_ context.Context, _ *dto.SignInRequest) (*dto.SignInResponse, error) {
	if s.signInErr != nil {
		return nil, s.signInErr
	}
	return s.signInResp, nil
}

func (s *stubAuthService) SignOut(_ context.Context) error { return nil }

func (s *stubAuthService) CurrentUser(_ context.Context) *session.Snapshot { return s.current }

func (s *stubAuthService) RequestPasswordReset(_ context.Context, _ string) error { return nil }

func (s *stubAuthService) VerifyResetCode(_ context.Context, _, _ string) error { return nil }

func (s *stubAuthService) ResetPassword(_ context.Context, _, _, _ string) error { return nil }

func (s *stubAuthService) DeleteAccount(_ context.Context, _, _ string) error { return nil }

func setupAuthRouter(t *testing.T, svc *stubAuthService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	v := validator.New()

	router := gin.New()
	api := router.Group("/api/v1")
	NewAuthHandler(NewBaseHandler(v), svc).RegisterRoutes(api)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		body       string
		wantStatus int
	}{
		{"created", nil, `{"email":"student@uni.edu","password":"password123"}`, http.StatusCreated},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, `{"email":"student@uni.edu","password":"password123"}`, http.StatusConflict},
		{"weak password", apperrors.ErrWeakPassword, `{"email":"student@uni.edu","password":"short"}`, http.StatusBadRequest},
		{"malformed email rejected by validation", nil, `{"email":"not-an-email","password":"password123"}`, http.StatusBadRequest},
		{"missing body fields", nil, `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(t, &stubAuthService{signUpErr: tt.serviceErr})
			w := postJSON(router, "/api/v1/auth/register", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestLoginStatusMapping(t *testing.T) {
	body := `{"email":"student@uni.edu","password":"password123"}`

	t.Run("success", func(t *testing.T) {
		router := setupAuthRouter(t, &stubAuthService{
			signInResp: &dto.SignInResponse{AccessToken: "token", User: &models.PublicUser{ID: "user-1"}},
		})
		w := postJSON(router, "/api/v1/auth/login", body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
	})

	t.Run("unknown email is 404, not 401", func(t *testing.T) {
		router := setupAuthRouter(t, &stubAuthService{signInErr: apperrors.ErrUserNotFound})
		w := postJSON(router, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not registered")
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		router := setupAuthRouter(t, &stubAuthService{signInErr: apperrors.ErrInvalidCredentials})
		w := postJSON(router, "/api/v1/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMeReportsSessionState(t *testing.T) {
	t.Run("signed out", func(t *testing.T) {
		router := setupAuthRouter(t, &stubAuthService{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"signed_in":false`)
	})

	t.Run("signed in", func(t *testing.T) {
		router := setupAuthRouter(t, &stubAuthService{
			current: &session.Snapshot{UserID: "user-1", Email: "student@uni.edu"},
		})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"signed_in":true`)
		assert.Contains(t, w.Body.String(), "user-1")
	})
}
