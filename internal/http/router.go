package httpx

import (
	"log/slog"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http/handlers"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http/middleware"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Auth   *handlers.AuthHandlers
	User   *handlers.UserHandlers
	Policy *handlers.PolicyHandlers
	JWT    *middleware.AuthMW
	Casbin *middleware.CasbinMW
}

func BuildRouter(h Handlers, m *metrics.Metrics, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.ClientContext(), middleware.Logger(log))
	if m != nil {
		r.Use(middleware.Metrics(m))
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api/v1")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/authenticate", h.Auth.Authenticate)
	api.POST("/auth/refreshtoken", h.Auth.Refresh)
	api.GET("/ping", handlers.Ping)

	v := r.Group("/api/v1").Use(h.JWT.WithJWT(), h.Casbin.Enforce())
	v.POST("/auth/register/coordinator", h.Auth.RegisterCoordinator)
	v.POST("/auth/register/admin", h.Auth.RegisterAdmin)
	v.POST("/auth/logout", h.Auth.Logout)
	v.GET("/user/me", h.User.Me)
	v.PATCH("/user/coordinator/id/:userId", h.User.UpdateCoordinator)
	v.DELETE("/user/coordinator/id/:userId", h.User.DeleteCoordinator)
	v.PATCH("/user/coordinator/email/:email", h.User.UpdateCoordinatorByEmail)
	v.DELETE("/user/coordinator/email/:email", h.User.DeleteCoordinatorByEmail)
	v.GET("/adminping", handlers.AdminPing)
	v.GET("/coordinatorping", handlers.CoordinatorPing)

	v.GET("/admin/policies", h.Policy.List)
	v.POST("/admin/policies", h.Policy.Add)
	v.DELETE("/admin/policies", h.Policy.Remove)

	return r
}
