// Package suggest 食譜推薦與目錄瀏覽的 HTTP 處理程序
package suggest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"recipe-suggester/internal/api/respond"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/matcher"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Reloader 重新載入目錄
type Reloader interface {
	Reload(ctx context.Context) (*catalog.Index, error)
}

// SuggestResponse 推薦響應
type SuggestResponse struct {
	Suggestions    []matcher.Suggestion `json:"suggestions"`
	CatalogVersion int64                `json:"catalog_version"`
	Cached         bool                 `json:"cached"`
	RequestID      string               `json:"request_id"`
}

// IngredientsResponse 食材清單響應
type IngredientsResponse struct {
	Ingredients []catalog.Ingredient `json:"ingredients"`
	Count       int                  `json:"count"`
}

// ReloadResponse 重新載入響應
type ReloadResponse struct {
	Status  string        `json:"status"`
	Catalog catalog.Stats `json:"catalog"`
}

// Handler 推薦處理程序
type Handler struct {
	service  *matcher.Service
	reloader Reloader
}

// NewHandler 創建推薦處理程序
func NewHandler(service *matcher.Service, reloader Reloader) *Handler {
	return &Handler{
		service:  service,
		reloader: reloader,
	}
}

// HandleSuggest 依食材推薦食譜
func (h *Handler) HandleSuggest(c *gin.Context) {
	requestID := requestid.Get(c)

	var req matcher.SuggestRequest
	if err := common.DecodeJSONStrict(c.Request.Body, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, common.ErrRequestTooLarge.Wrap(err))
			return
		}
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		respond.Error(c, common.ErrInvalidRequest.Wrap(err))
		return
	}

	result, err := h.service.Suggest(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, mapError(err))
		return
	}

	common.LogDebug("推薦完成",
		zap.String("request_id", requestID),
		zap.Int("results", len(result.Suggestions)),
		zap.Bool("cached", result.Cached),
	)

	c.JSON(http.StatusOK, SuggestResponse{
		Suggestions:    result.Suggestions,
		CatalogVersion: result.CatalogVersion,
		Cached:         result.Cached,
		RequestID:      requestID,
	})
}

// HandleSubstitutes 查詢一個食材的替代候選
func (h *Handler) HandleSubstitutes(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, common.ErrInvalidRequest.Wrap(err))
			return
		}
		limit = n
	}

	result, err := h.service.Substitutes(c.Request.Context(), c.Param("name"), limit)
	if err != nil {
		respond.Error(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleIngredients 列出目錄中的食材
func (h *Handler) HandleIngredients(c *gin.Context) {
	ingredients, err := h.service.Ingredients(c.Query("category"))
	if err != nil {
		respond.Error(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, IngredientsResponse{
		Ingredients: ingredients,
		Count:       len(ingredients),
	})
}

// HandleCatalog 回傳目前目錄的摘要
func (h *Handler) HandleCatalog(c *gin.Context) {
	info, err := h.service.CatalogInfo()
	if err != nil {
		respond.Error(c, mapError(err))
		return
	}
	c.JSON(http.StatusOK, info)
}

// HandleReload 從來源重新載入目錄；失敗時繼續使用舊目錄
func (h *Handler) HandleReload(c *gin.Context) {
	idx, err := h.reloader.Reload(c.Request.Context())
	if err != nil {
		common.LogError("目錄重新載入失敗",
			zap.String("request_id", requestid.Get(c)),
			zap.Error(err),
		)
		respond.Error(c, common.ErrCatalogReloadFailed.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, ReloadResponse{
		Status:  "reloaded",
		Catalog: idx.Stats(),
	})
}

// mapError 將服務層錯誤轉換為 API 錯誤
func mapError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrCatalogUnavailable):
		return common.ErrCatalogUnavailable.Wrap(err)
	case errors.Is(err, matcher.ErrInvalidPantry):
		return common.ErrInvalidPantry.Wrap(err)
	case errors.Is(err, matcher.ErrInvalidRequest):
		return common.ErrInvalidRequest.Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return common.ErrGatewayTimeout.Wrap(err)
	default:
		return common.ErrInternalError.Wrap(err)
	}
}
