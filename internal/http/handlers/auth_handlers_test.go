package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/mocks"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// performRequest runs a single request through a bare engine
func performRequest(t *testing.T, method, path string, body interface{}, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	register(r)

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Firstname:   "Alice",
		Lastname:    "Smith",
		PhoneNumber: "+15551230000",
		Email:       "alice@example.com",
		Password:    "Secr3t!",
	}
}

func TestAuthHandlers_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(*mocks.MockAuthService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful registration",
			body: validRegisterRequest(),
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
					if input.Email != "alice@example.com" || input.PhoneNumber != "+15551230000" {
						return nil, errors.New("request fields not forwarded")
					}
					return &domain.AuthResult{AccessToken: "a1", RefreshToken: "r1"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "duplicate user",
			body: validRegisterRequest(),
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
					return nil, domain.ErrUserAlreadyExists
				}
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   CodeUserAlreadyExists,
		},
		{
			name: "validation failure",
			body: validRegisterRequest(),
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
					return nil, domain.NewValidationError("phoneNumber", "incorrect phone number format")
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeValidation,
		},
		{
			name:           "malformed json",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   CodeValidation,
		},
		{
			name: "unexpected failure hides details",
			body: validRegisterRequest(),
			setupMocks: func(svc *mocks.MockAuthService) {
				svc.RegisterFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
					return nil, errors.New("pq: connection refused")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			if tt.setupMocks != nil {
				tt.setupMocks(svc)
			}
			h := NewAuthHandlers(svc)

			w := performRequest(t, http.MethodPost, "/register", tt.body, func(r *gin.Engine) {
				r.POST("/register", h.Register)
			})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				resp := decodeError(t, w)
				assert.Equal(t, tt.expectedCode, resp.ErrorCode)
				assert.NotContains(t, resp.Message, "pq:")
				return
			}

			var resp AuthenticationResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "a1", resp.AccessToken)
			assert.Equal(t, "r1", resp.RefreshToken)
		})
	}
}

func TestAuthHandlers_RegisterWithRoles(t *testing.T) {
	svc := mocks.NewMockAuthService()
	var called []string
	svc.RegisterCoordinatorFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
		called = append(called, "coordinator")
		return &domain.AuthResult{AccessToken: "a", RefreshToken: "r"}, nil
	}
	svc.RegisterAdminFunc = func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
		called = append(called, "admin")
		return &domain.AuthResult{AccessToken: "a", RefreshToken: "r"}, nil
	}
	h := NewAuthHandlers(svc)
	register := func(r *gin.Engine) {
		r.POST("/register/coordinator", h.RegisterCoordinator)
		r.POST("/register/admin", h.RegisterAdmin)
	}

	w := performRequest(t, http.MethodPost, "/register/coordinator", validRegisterRequest(), register)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(t, http.MethodPost, "/register/admin", validRegisterRequest(), register)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"coordinator", "admin"}, called)
}

func TestAuthHandlers_Authenticate(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"successful login", nil, http.StatusOK, ""},
		{"unknown email", domain.ErrUserNotFound, http.StatusNotFound, CodeUserNotFound},
		{"wrong password", domain.ErrInvalidPassword, http.StatusUnauthorized, CodeInvalidPassword},
		{"blank password", domain.NewValidationError("password", "password is blank"), http.StatusBadRequest, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			svc.AuthenticateFunc = func(ctx context.Context, email, password string) (*domain.AuthResult, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return &domain.AuthResult{AccessToken: "a2", RefreshToken: "r2"}, nil
			}
			h := NewAuthHandlers(svc)

			w := performRequest(t, http.MethodPost, "/authenticate", AuthenticationRequest{
				Email:    "alice@example.com",
				Password: "Secr3t!",
			}, func(r *gin.Engine) { r.POST("/authenticate", h.Authenticate) })

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).ErrorCode)
				return
			}
			assert.JSONEq(t, `{"accessToken":"a2","refreshToken":"r2"}`, w.Body.String())
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"successful refresh", nil, http.StatusOK, ""},
		{"unknown token", domain.ErrRefreshTokenNotFound, http.StatusUnauthorized, CodeRefreshTokenExpired},
		{"expired token", domain.ErrRefreshTokenExpired, http.StatusUnauthorized, CodeRefreshTokenExpired},
		{"concurrent refresh", domain.ErrConcurrentRefresh, http.StatusConflict, CodeConcurrentRefresh},
		{"token too long", domain.NewValidationError("refreshToken", "refresh token length is 36"), http.StatusBadRequest, CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockAuthService()
			var presented string
			svc.RefreshFunc = func(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
				presented = refreshToken
				if tt.err != nil {
					return nil, tt.err
				}
				return &domain.AuthResult{AccessToken: "a3", RefreshToken: "r3"}, nil
			}
			h := NewAuthHandlers(svc)

			w := performRequest(t, http.MethodPost, "/refreshtoken", TokenRefreshRequest{RefreshToken: "r2"},
				func(r *gin.Engine) { r.POST("/refreshtoken", h.Refresh) })

			assert.Equal(t, "r2", presented)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeError(t, w).ErrorCode)
				return
			}
			assert.JSONEq(t, `{"accessToken":"a3","refreshToken":"r3"}`, w.Body.String())
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	svc := mocks.NewMockAuthService()
	var loggedOut uint
	svc.LogoutFunc = func(ctx context.Context, userID uint) error {
		loggedOut = userID
		return nil
	}
	h := NewAuthHandlers(svc)

	w := performRequest(t, http.MethodPost, "/logout", nil, func(r *gin.Engine) {
		r.POST("/logout", func(c *gin.Context) { c.Set("user_id", uint(7)) }, h.Logout)
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, uint(7), loggedOut)

	w = performRequest(t, http.MethodPost, "/logout", nil, func(r *gin.Engine) {
		r.POST("/logout", h.Logout)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, CodeUnauthorized, decodeError(t, w).ErrorCode)
}
