package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-suggester/internal/api/handlers/health"
	"recipe-suggester/internal/api/handlers/suggest"
	"recipe-suggester/internal/api/middleware"
	"recipe-suggester/internal/api/respond"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/matcher"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// CatalogHolder 提供並重新載入目錄索引
type CatalogHolder interface {
	Current() (*catalog.Index, error)
	Reload(ctx context.Context) (*catalog.Index, error)
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc *matcher.Service, holder CatalogHolder) (*gin.Engine, error) {
	if cfg == nil || svc == nil || holder == nil {
		return nil, errors.New("router requires config, matcher service and catalog holder")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.New().String()
	})))
	router.Use(middleware.Logger())
	router.Use(respond.EnableDebug(cfg.App.Debug))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(requestTimeout(cfg.Server.RequestTimeout))

	// 健康檢查與指標
	healthHandler := health.NewHandler(cfg, holder)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler := suggest.NewHandler(svc, holder)
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		api.POST("/suggest", handler.HandleSuggest)

		api.GET("/ingredients", handler.HandleIngredients)
		api.GET("/ingredients/:name/substitutes", handler.HandleSubstitutes)

		api.GET("/catalog", handler.HandleCatalog)
		api.POST("/catalog/reload", dedup.Handler(), handler.HandleReload)
	}

	router.NoRoute(func(c *gin.Context) {
		respond.Error(c, common.ErrNotFound)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}

// requestTimeout 為每個請求設置超時；處理程序未寫出響應時回傳 504
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeout),
			)
			respond.Error(c, common.ErrGatewayTimeout.Wrap(fmt.Errorf("exceeded %s", timeout)))
		}
	}
}
