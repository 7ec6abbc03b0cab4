package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// Keys under which the authenticated principal is stored in the gin context
const (
	ContextUserID = "user_id"
	ContextEmail  = "email"
	ContextRoles  = "roles"
)

// AuthMW wraps the token service and user repository for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{
		tokenSvc: tokenSvc,
		userRepo: userRepo,
	}
}

// WithJWT authenticates the bearer token. The subject must name an existing
// account, the token must be valid for that account's email, and a non-zero
// uid claim must match the account id.
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "authorization header required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid authorization header format")
			return
		}
		token := tokenParts[1]

		claims, err := mw.tokenSvc.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "token expired")
			default:
				handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid token")
			}
			return
		}

		user, err := mw.userRepo.FindByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid token")
				return
			}
			_ = c.Error(err)
			handlers.Abort(c, http.StatusInternalServerError, handlers.CodeInternal, "internal server error")
			return
		}

		if !mw.tokenSvc.IsValidFor(token, user.Email) {
			handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid token")
			return
		}

		// The uid claim must name the same account as the subject
		if claims.UserID != 0 && claims.UserID != user.ID {
			handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, "invalid token")
			return
		}

		// Roles come from the stored flags, not from the token
		roles := user.Roles()
		names := make([]string, len(roles))
		for i, r := range roles {
			names[i] = string(r)
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextEmail, user.Email)
		c.Set(ContextRoles, names)
		c.Next()
	}
}
