package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// IndexProvider 提供目前的目錄索引
type IndexProvider interface {
	Current() (*catalog.Index, error)
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Catalog   *CatalogStatus         `json:"catalog"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// CatalogStatus 目錄狀態
type CatalogStatus struct {
	Available bool           `json:"available"`
	LoadedAt  *time.Time     `json:"loaded_at,omitempty"`
	Stats     *catalog.Stats `json:"stats,omitempty"`
}

// Handler 健康檢查處理程序
type Handler struct {
	cfg      *config.Config
	provider IndexProvider
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, provider IndexProvider) *Handler {
	return &Handler{cfg: cfg, provider: provider}
}

// HealthCheck 健康檢查；目錄未載入時狀態為 degraded，但仍回傳 200
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	status := "ok"
	catalogStatus := h.catalogStatus()
	if !catalogStatus.Available {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Catalog:   catalogStatus,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查，目錄可用才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if _, err := h.provider.Current(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (h *Handler) catalogStatus() *CatalogStatus {
	idx, err := h.provider.Current()
	if err != nil {
		return &CatalogStatus{Available: false}
	}
	stats := idx.Stats()
	loadedAt := idx.LoadedAt()
	return &CatalogStatus{
		Available: true,
		LoadedAt:  &loadedAt,
		Stats:     &stats,
	}
}
