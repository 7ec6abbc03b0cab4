package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

// CasbinMW authorizes the request path and method against the role policies
type CasbinMW struct {
	policy domain.PolicyService
	audit  domain.AuditLogger
	log    *slog.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policy domain.PolicyService, audit domain.AuditLogger, log *slog.Logger) *CasbinMW {
	if log == nil {
		log = slog.Default()
	}
	return &CasbinMW{policy: policy, audit: audit, log: log}
}

// Enforce returns the casbin authorization middleware. It must run after
// AuthMW; access is granted when any of the user's roles is allowed.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(ContextRoles)
		userID := c.GetUint(ContextUserID)
		if userID == 0 || len(roles) == 0 {
			handlers.Abort(c, http.StatusUnauthorized, handlers.CodeUnauthorized, domain.ErrUnauthorized.Error())
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method
		ctx := c.Request.Context()

		allowed, err := mw.policy.CheckAnyPermission(roles, path, method)
		if err != nil {
			mw.log.ErrorContext(ctx, "authorization check failed", "path", path, "method", method, "error", err)
			handlers.Abort(c, http.StatusInternalServerError, handlers.CodeInternal, "authorization check failed")
			return
		}

		if !allowed {
			mw.record(c, userID, path, method, false, domain.ErrInsufficientRole.Error())
			handlers.Abort(c, http.StatusForbidden, handlers.CodeAccessDenied, "access denied")
			return
		}

		mw.record(c, userID, path, method, true, "")
		c.Next()
	}
}

func (mw *CasbinMW) record(c *gin.Context, userID uint, path, method string, granted bool, reason string) {
	if mw.audit == nil {
		return
	}
	if err := mw.audit.LogAccessAttempt(c.Request.Context(), userID, path, method, granted, reason); err != nil {
		mw.log.Warn("failed to write audit event", "error", err)
	}
}
