package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/gin-gonic/gin"
)

// Error codes returned in ErrorResponse.ErrorCode
const (
	CodeUserAlreadyExists   = "USER_ALREADY_EXISTS"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidPassword     = "INVALID_PASSWORD"
	CodeRefreshTokenExpired = "REFRESH_TOKEN_EXPIRED"
	CodeValidation          = "VALIDATION_ERROR"
	CodeConcurrentRefresh   = "CONCURRENT_REFRESH"
	CodeUserNotCoordinator  = "USER_NOT_COORDINATOR"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodeInternal            = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// AuthenticationResponse carries a freshly issued token pair
type AuthenticationResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID            uint      `json:"id"`
	Firstname     string    `json:"firstname"`
	Lastname      string    `json:"lastname"`
	Patronymic    string    `json:"patronymic,omitempty"`
	PhoneNumber   string    `json:"phoneNumber"`
	Email         string    `json:"email"`
	IsAdmin       bool      `json:"isAdmin"`
	IsCoordinator bool      `json:"isCoordinator"`
	CreatedAt     time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Firstname:     u.Firstname,
		Lastname:      u.Lastname,
		Patronymic:    u.Patronymic,
		PhoneNumber:   u.PhoneNumber,
		Email:         u.Email,
		IsAdmin:       u.IsAdmin,
		IsCoordinator: u.IsCoordinator,
		CreatedAt:     u.CreatedAt,
	}
}

// Abort writes an ErrorResponse and stops the handler chain
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{ErrorCode: code, Message: message})
}

// writeError maps domain errors to HTTP responses. Unknown errors become 500
// without leaking their message.
func writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		Abort(c, http.StatusBadRequest, CodeValidation, vErr.Error())
	case errors.Is(err, domain.ErrUserAlreadyExists):
		Abort(c, http.StatusConflict, CodeUserAlreadyExists, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		Abort(c, http.StatusNotFound, CodeUserNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidPassword):
		Abort(c, http.StatusUnauthorized, CodeInvalidPassword, err.Error())
	case errors.Is(err, domain.ErrRefreshTokenNotFound), errors.Is(err, domain.ErrRefreshTokenExpired):
		Abort(c, http.StatusUnauthorized, CodeRefreshTokenExpired, err.Error())
	case errors.Is(err, domain.ErrConcurrentRefresh):
		Abort(c, http.StatusConflict, CodeConcurrentRefresh, err.Error())
	case errors.Is(err, domain.ErrUserNotCoordinator):
		Abort(c, http.StatusForbidden, CodeUserNotCoordinator, err.Error())
	default:
		_ = c.Error(err)
		Abort(c, http.StatusInternalServerError, CodeInternal, "internal server error")
	}
}

// bindJSON decodes the request body, answering 400 on malformed input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Abort(c, http.StatusBadRequest, CodeValidation, err.Error())
		return false
	}
	return true
}
