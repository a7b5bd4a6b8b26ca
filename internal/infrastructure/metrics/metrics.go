// Package metrics 推薦服務的 Prometheus 指標
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SuggestRequestsTotal 推薦請求數，依是否命中快取分類
	SuggestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_suggest_requests_total",
			Help: "Total number of suggest requests",
		},
		[]string{"cached"},
	)

	// SuggestDuration 推薦計算耗時
	SuggestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_suggest_duration_seconds",
			Help:    "Duration of suggest computations in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// SubstitutionsAppliedTotal 推薦結果中使用的替代品，依來源分類
	SubstitutionsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_substitutions_applied_total",
			Help: "Total number of substitutions applied in returned suggestions",
		},
		[]string{"reason"},
	)

	// CacheHitsTotal 推薦快取命中次數
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_suggest_cache_hits_total",
			Help: "Total number of suggest cache hits",
		},
	)

	// CacheMissesTotal 推薦快取未命中次數
	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_suggest_cache_misses_total",
			Help: "Total number of suggest cache misses",
		},
	)

	// CatalogReloadsTotal 目錄載入次數，依結果分類
	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"status"},
	)

	// CatalogReloadDuration 目錄載入耗時
	CatalogReloadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_catalog_reload_duration_seconds",
			Help:    "Duration of catalog reloads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// CatalogVersion 目前使用中的目錄版本
	CatalogVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_catalog_version",
			Help: "Version of the catalog currently being served",
		},
	)

	// CatalogRecipes 目錄中的食譜數
	CatalogRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_catalog_recipes",
			Help: "Number of recipes in the current catalog",
		},
	)

	// CatalogIngredients 目錄中的食材數
	CatalogIngredients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_catalog_ingredients",
			Help: "Number of ingredients in the current catalog",
		},
	)

	// HTTPRequestDuration HTTP 請求耗時
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipe_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordSuggest 記錄一次推薦請求
func RecordSuggest(cached bool, duration time.Duration) {
	SuggestRequestsTotal.WithLabelValues(strconv.FormatBool(cached)).Inc()
	if !cached {
		SuggestDuration.Observe(duration.Seconds())
	}
}

// RecordSubstitution 記錄一個被採用的替代品
func RecordSubstitution(reason string) {
	SubstitutionsAppliedTotal.WithLabelValues(reason).Inc()
}

// RecordCacheHit 記錄快取命中
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss 記錄快取未命中
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordCatalogReload 記錄目錄載入結果；成功時更新目錄規模
func RecordCatalogReload(version int64, recipes, ingredients int, duration time.Duration, err error) {
	CatalogReloadDuration.Observe(duration.Seconds())
	if err != nil {
		CatalogReloadsTotal.WithLabelValues("failure").Inc()
		return
	}
	CatalogReloadsTotal.WithLabelValues("success").Inc()
	CatalogVersion.Set(float64(version))
	CatalogRecipes.Set(float64(recipes))
	CatalogIngredients.Set(float64(ingredients))
}

// RecordHTTPRequest 記錄 HTTP 請求耗時
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
