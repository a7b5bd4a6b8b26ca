package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-suggester/internal/api"
	"recipe-suggester/internal/core/cache"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/matcher"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/infrastructure/metrics"
	"recipe-suggester/internal/infrastructure/store/sqlite"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（包含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("catalog_driver", cfg.Catalog.Driver),
		zap.String("catalog_path", cfg.Catalog.Path),
		zap.String("catalog_url", cfg.Catalog.URL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 目錄來源
	source, closeSource, err := newCatalogSource(ctx, cfg.Catalog)
	if err != nil {
		// 來源無法建立時仍啟動服務，推薦端點回傳 503
		common.LogError("Failed to open catalog source", zap.Error(err))
		source = unavailableSource{err: err}
	}
	defer closeSource()

	holder := catalog.NewHolder(source, cfg.Catalog.StrictReferences, recordReload)
	if _, err := holder.Reload(ctx); err != nil {
		common.LogError("Catalog unavailable, serving in degraded mode", zap.Error(err))
	}
	if cfg.Catalog.ReloadInterval > 0 {
		go holder.Watch(ctx, cfg.Catalog.ReloadInterval)
	}

	// 初始化快取
	resultCache, err := cache.New(ctx, cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if resultCache != nil {
		defer resultCache.Close()
	}

	svc := matcher.NewService(holder, resultCache, cfg.Matcher)

	router, err := api.SetupRouter(cfg, svc, holder)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		common.LogInfo(common.MsgServiceStarted,
			zap.Int("port", cfg.Server.Port),
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo(common.MsgShuttingDown)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
	}

	common.LogInfo(common.MsgServerExited)
}

// newCatalogSource 依設定建立目錄來源，回傳的 close 函式永遠可呼叫
func newCatalogSource(ctx context.Context, cfg config.CatalogConfig) (catalog.Source, func(), error) {
	noop := func() {}
	switch cfg.Driver {
	case config.CatalogDriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	case config.CatalogDriverFile:
		return catalog.NewFileSource(cfg.Path), noop, nil
	case config.CatalogDriverHTTP:
		return catalog.NewHTTPSource(cfg.URL, cfg.Timeout), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}

// recordReload 將每次目錄載入結果寫入指標
func recordReload(idx *catalog.Index, duration time.Duration, err error) {
	if err != nil || idx == nil {
		metrics.RecordCatalogReload(0, 0, 0, duration, err)
		return
	}
	stats := idx.Stats()
	metrics.RecordCatalogReload(stats.Version, stats.Recipes, stats.Ingredients, duration, nil)
}

// unavailableSource 來源無法開啟時使用，每次載入都回傳相同錯誤
type unavailableSource struct {
	err error
}

func (s unavailableSource) Name() string { return "unavailable" }

func (s unavailableSource) Load(context.Context) (*catalog.Data, error) {
	return nil, s.err
}
