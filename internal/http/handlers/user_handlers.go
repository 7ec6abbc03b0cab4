package handlers

import (
	"net/http"
	"strconv"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/gin-gonic/gin"
)

// UserHandlers serves the current-user profile and coordinator management
type UserHandlers struct {
	authSvc domain.AuthService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService) *UserHandlers {
	return &UserHandlers{authSvc: authSvc}
}

// Me returns the profile of the authenticated user
func (h *UserHandlers) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateCoordinatorRequest is a partial coordinator profile; omitted fields keep their value
type UpdateCoordinatorRequest struct {
	Firstname   *string `json:"firstname"`
	Lastname    *string `json:"lastname"`
	Patronymic  *string `json:"patronymic"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       *string `json:"email"`
}

func (r UpdateCoordinatorRequest) input() domain.UpdateCoordinatorInput {
	return domain.UpdateCoordinatorInput{
		Firstname:   r.Firstname,
		Lastname:    r.Lastname,
		Patronymic:  r.Patronymic,
		PhoneNumber: r.PhoneNumber,
		Email:       r.Email,
	}
}

// UpdateCoordinator patches a coordinator profile by id
func (h *UserHandlers) UpdateCoordinator(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	var req UpdateCoordinatorRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.UpdateCoordinator(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateCoordinatorByEmail patches a coordinator profile by email
func (h *UserHandlers) UpdateCoordinatorByEmail(c *gin.Context) {
	var req UpdateCoordinatorRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.UpdateCoordinatorByEmail(c.Request.Context(), c.Param("email"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// DeleteCoordinator removes a coordinator account by id
func (h *UserHandlers) DeleteCoordinator(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}

	if err := h.authSvc.DeleteCoordinator(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCoordinatorByEmail removes a coordinator account by email
func (h *UserHandlers) DeleteCoordinatorByEmail(c *gin.Context) {
	if err := h.authSvc.DeleteCoordinatorByEmail(c.Request.Context(), c.Param("email")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil || id == 0 {
		Abort(c, http.StatusBadRequest, CodeValidation, "userId: must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// Ping answers with pong
func Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// AdminPing answers with pong for admins
func AdminPing(c *gin.Context) {
	c.String(http.StatusOK, "admin pong")
}

// CoordinatorPing answers with pong for coordinators
func CoordinatorPing(c *gin.Context) {
	c.String(http.StatusOK, "coordinator pong")
}
