package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapocr/core/internal/middleware"
	"github.com/snapocr/core/internal/modules/auth"
	"github.com/snapocr/core/internal/modules/ocr"
	"github.com/snapocr/core/internal/modules/record"
	"github.com/snapocr/core/internal/modules/settings"
	"github.com/snapocr/core/internal/modules/storage/file"
	"github.com/snapocr/core/internal/pkg/metrics"
	pkgredis "github.com/snapocr/core/internal/pkg/redis"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.Static("/static", a.cfg.Storage.StaticDir)

	api := r.Group("")
	api.Use(middleware.OptionalAuth(db))
	if rc != nil {
		// Anonymous callers share the service key, so they get throttled.
		api.Use(middleware.RateLimit(rc.Raw()))
	}

	ocrSvc := ocr.NewService(a.logger)
	ocr.NewHandler(db, a.cfg, ocrSvc).RegisterRoutes(api, authMW)
	settings.NewHandler(db).RegisterRoutes(api, authMW)
	record.NewHandler(db).RegisterRoutes(api, authMW)
	auth.NewHandler(db, a.logger).RegisterRoutes(api, authMW)
	file.NewHandler(a.cfg, a.logger).RegisterRoutes(api, authMW)
}
