package e2e

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/app"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/config"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/database"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	adminEmail          = "admin@example.com"
	adminPassword       = "adminPassword"
	userEmail           = "user@example.com"
	userPassword        = "baseUserPassword"
	coordinatorEmail    = "coordinator@example.com"
	coordinatorPassword = "coordinatorPassword"
)

// TestServer runs the fully wired service over sqlite and miniredis
type TestServer struct {
	t         *testing.T
	Server    *httptest.Server
	Container *app.Container
	Redis     *miniredis.Miniredis
	Client    *http.Client
}

// NewTestServer builds, seeds and starts a server. It is stopped on cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         database.NewGormLogger(nil, 0),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	mr := miniredis.RunT(t)
	rdb := database.NewRedis(mr.Addr(), "", 0)

	cfg := &config.Config{
		JWTSecret:           base64.StdEncoding.EncodeToString([]byte(strings.Repeat("e", 32))),
		JWTIssuer:           "volunteers",
		AccessTTL:           15 * time.Minute,
		RefreshTTL:          time.Hour,
		AdminPassword:       adminPassword,
		BaseUserPassword:    userPassword,
		CoordinatorPassword: coordinatorPassword,
		BcryptCost:          bcrypt.MinCost,
	}

	c, err := app.Build(cfg, db, rdb, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, c.SeedAccounts(context.Background()))

	srv := httptest.NewServer(c.Router())
	t.Cleanup(func() {
		srv.Close()
		c.Close()
	})

	return &TestServer{
		t:         t,
		Server:    srv,
		Container: c,
		Redis:     mr,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Do sends a request with an optional JSON body and bearer token
func (ts *TestServer) Do(method, path string, body interface{}, token string) *http.Response {
	ts.t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(ts.t, err)
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL(path), r)
	require.NoError(ts.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(ts.t, err)
	ts.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// Login authenticates and returns the issued pair
func (ts *TestServer) Login(email, password string) tokenPair {
	ts.t.Helper()
	resp := ts.Do(http.MethodPost, "/api/v1/auth/authenticate", credentials{Email: email, Password: password}, "")
	require.Equal(ts.t, http.StatusOK, resp.StatusCode)
	return decode[tokenPair](ts.t, resp)
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registration struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Patronymic  string `json:"patronymic,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type errorBody struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

type profile struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	IsAdmin       bool   `json:"isAdmin"`
	IsCoordinator bool   `json:"isCoordinator"`
}

func newRegistration(email, phone string) registration {
	return registration{
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Patronymic:  "Sergeevich",
		PhoneNumber: phone,
		Email:       email,
		Password:    "Str0ngPassword",
	}
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}
