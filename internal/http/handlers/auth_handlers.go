package handlers

import (
	"context"
	"net/http"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/gin-gonic/gin"
)

// AuthHandlers handles registration, login and token refresh
type AuthHandlers struct {
	authSvc domain.AuthService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Firstname   string `json:"firstname"`
	Lastname    string `json:"lastname"`
	Patronymic  string `json:"patronymic"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (r RegisterRequest) input() domain.RegisterInput {
	return domain.RegisterInput{
		Firstname:   r.Firstname,
		Lastname:    r.Lastname,
		Patronymic:  r.Patronymic,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
		Password:    r.Password,
	}
}

// AuthenticationRequest represents login request
type AuthenticationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRefreshRequest represents token refresh request
type TokenRefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type registerFunc func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)

func (h *AuthHandlers) register(c *gin.Context, fn registerFunc) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := fn(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	writeTokens(c, result)
}

// Register handles self-service registration
func (h *AuthHandlers) Register(c *gin.Context) {
	h.register(c, h.authSvc.Register)
}

// RegisterCoordinator handles coordinator registration by an admin
func (h *AuthHandlers) RegisterCoordinator(c *gin.Context) {
	h.register(c, h.authSvc.RegisterCoordinator)
}

// RegisterAdmin handles admin registration by an admin
func (h *AuthHandlers) RegisterAdmin(c *gin.Context) {
	h.register(c, h.authSvc.RegisterAdmin)
}

// Authenticate handles user login
func (h *AuthHandlers) Authenticate(c *gin.Context) {
	var req AuthenticationRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	writeTokens(c, result)
}

// Refresh handles token refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req TokenRefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, err)
		return
	}
	writeTokens(c, result)
}

// Logout revokes the refresh token of the authenticated user
func (h *AuthHandlers) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeTokens(c *gin.Context, result *domain.AuthResult) {
	c.JSON(http.StatusOK, AuthenticationResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// currentUserID reads the id stored by the auth middleware
func currentUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		Abort(c, http.StatusUnauthorized, CodeUnauthorized, "user ID not found in context")
		return 0, false
	}
	return userID, true
}
