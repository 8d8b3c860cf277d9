package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/snapocr/core/internal/config"
	"github.com/snapocr/core/internal/database"
	"github.com/snapocr/core/internal/middleware"
	"github.com/snapocr/core/internal/pkg/cron"
	"github.com/snapocr/core/internal/pkg/jwt"
	redispkg "github.com/snapocr/core/internal/pkg/redis"
	"github.com/snapocr/core/internal/pkg/session"
)

const shutdownTimeout = 10 * time.Second

// App bundles the HTTP server and its dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	sched  *cron.Scheduler
}

func New(cfg *config.AppConfig, logger *zap.Logger) (*App, error) {
	jwt.SetSecret(cfg.JWTSecret)

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, err
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins))

	var rc *redispkg.Client
	if cfg.RedisURL != "" {
		rc, err = redispkg.Connect(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
			rc = nil
		}
	}

	a := &App{
		cfg:    cfg,
		router: router,
		db:     db,
		logger: logger,
		sched:  cron.New(),
	}
	a.registerRoutes(rc)
	a.registerJobs()
	return a, nil
}

func (a *App) registerJobs() {
	a.sched.Register(cron.Job{
		Name:     "purge-expired-sessions",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := session.PurgeExpired(a.db)
			if err != nil {
				a.logger.Warn("session purge failed", zap.Error(err))
				return err
			}
			if n > 0 {
				a.logger.Info("purged expired sessions", zap.Int64("count", n))
			}
			return nil
		},
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.sched.Start(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Port),
		Handler: a.router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", zap.Int("port", a.cfg.Port), zap.String("env", a.cfg.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Router exposes the underlying engine for tests.
func (a *App) Router() *gin.Engine { return a.router }
