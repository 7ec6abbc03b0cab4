package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/config"
	httpx "github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http/handlers"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/http/middleware"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/audit"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/auth"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/database"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/locks"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/metrics"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/infrastructure/repositories"
	"github.com/ADT-VOLUNTEERS-CASE/SERVER/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const refreshLockTTL = 10 * time.Second

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Log    *slog.Logger

	// Infrastructure
	DB      *gorm.DB
	Redis   *database.RedisClient // nil when no Redis is configured
	Metrics *metrics.Metrics
	Casbin  *auth.CasbinService

	// Repositories
	UserRepo    domain.UserRepository
	RefreshRepo domain.RefreshTokenRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	RefreshSvc  domain.RefreshTokenService
	Locker      domain.Locker
	Audit       domain.AuditLogger
	AuthSvc     domain.AuthService
	PolicySvc   domain.PolicyService
}

// NewContainer connects to PostgreSQL and, when configured, Redis, then
// wires every dependency.
func NewContainer(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Container, error) {
	db, err := database.Open(cfg.DSN, log)
	if err != nil {
		return nil, err
	}

	var rdb *database.RedisClient
	if cfg.RedisAddr != "" {
		rdb, err = database.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			closeDB(db)
			return nil, err
		}
	}

	c, err := Build(cfg, db, rdb, log)
	if err != nil {
		closeDB(db)
		if rdb != nil {
			rdb.Close()
		}
		return nil, err
	}
	return c, nil
}

// Build wires the container on top of already opened connections. rdb may be nil.
func Build(cfg *config.Config, db *gorm.DB, rdb *database.RedisClient, log *slog.Logger) (*Container, error) {
	if log == nil {
		log = slog.Default()
	}
	c := &Container{Config: cfg, Log: log, DB: db, Redis: rdb}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initDatabase() error {
	if err := database.AutoMigrate(c.DB); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	added, err := cas.SeedPolicies(auth.DefaultPolicies)
	if err != nil {
		return err
	}
	if added > 0 {
		c.Log.Info("casbin: seeded default policies", "count", added)
	}
	c.Casbin = cas
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.RefreshRepo = repositories.NewRefreshTokenRepository(c.DB)
}

func (c *Container) initServices() error {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)

	tokenSvc, err := auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)
	if err != nil {
		return err
	}
	c.TokenSvc = tokenSvc

	c.RefreshSvc = services.NewRefreshTokenService(c.RefreshRepo, c.Config.RefreshTTL)

	if c.Redis != nil {
		c.Locker = locks.NewRedisLocker(c.Redis, "refresh-lock:", refreshLockTTL)
	} else {
		c.Locker = locks.NoopLocker{}
	}

	c.Metrics = metrics.New()
	c.Audit = metrics.InstrumentAudit(audit.NewLogger(c.Log), c.Metrics)

	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.RefreshSvc,
		c.PasswordSvc,
		c.TokenSvc,
		c.Locker,
		c.Audit,
		c.Log,
	)
	return nil
}

// Router builds the HTTP handler tree
func (c *Container) Router() *gin.Engine {
	return httpx.BuildRouter(httpx.Handlers{
		Auth:   handlers.NewAuthHandlers(c.AuthSvc),
		User:   handlers.NewUserHandlers(c.AuthSvc),
		Policy: handlers.NewPolicyHandlers(c.PolicySvc),
		JWT:    middleware.NewAuthMW(c.TokenSvc, c.UserRepo),
		Casbin: middleware.NewCasbinMW(c.PolicySvc, c.Audit, c.Log),
	}, c.Metrics, c.Log)
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, closeDB(c.DB))
	}
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
