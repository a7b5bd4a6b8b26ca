package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ReloadHook 每次成功或失敗的載入後呼叫
type ReloadHook func(idx *Index, duration time.Duration, err error)

// Holder 持有目前的目錄索引，重新載入時以原子操作替換。
// 併發的 Reload 呼叫會合併為一次載入。
type Holder struct {
	source  Source
	strict  bool
	current atomic.Pointer[Index]
	version atomic.Int64
	group   singleflight.Group
	hooks   []ReloadHook
}

// NewHolder 創建目錄持有者，尚未載入任何資料
func NewHolder(source Source, strictReferences bool, hooks ...ReloadHook) *Holder {
	return &Holder{
		source: source,
		strict: strictReferences,
		hooks:  hooks,
	}
}

// Current 回傳目前的索引，尚未成功載入時回傳 ErrCatalogUnavailable
func (h *Holder) Current() (*Index, error) {
	idx := h.current.Load()
	if idx == nil {
		return nil, ErrCatalogUnavailable
	}
	return idx, nil
}

// Reload 從來源重新載入並替換索引；失敗時保留舊索引
func (h *Holder) Reload(ctx context.Context) (*Index, error) {
	v, err, shared := h.group.Do("reload", func() (interface{}, error) {
		return h.reload(ctx)
	})
	if shared {
		common.LogDebug("Catalog reload coalesced")
	}
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

func (h *Holder) reload(ctx context.Context) (*Index, error) {
	start := time.Now()
	idx, err := h.load(ctx)
	duration := time.Since(start)

	for _, hook := range h.hooks {
		hook(idx, duration, err)
	}
	if err != nil {
		common.LogError("目錄載入失敗",
			zap.String("source", h.source.Name()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	h.current.Store(idx)

	stats := idx.Stats()
	common.LogInfo(common.MsgCatalogLoaded,
		zap.String("source", h.source.Name()),
		zap.Int64("version", stats.Version),
		zap.Int("recipes", stats.Recipes),
		zap.Int("ingredients", stats.Ingredients),
		zap.Int("substitutions", stats.Substitutions),
		zap.Duration("duration", duration),
	)
	for _, ref := range idx.unresolved {
		common.LogWarn("Ignoring reference to unknown ingredient",
			zap.String("owner", ref.Owner),
			zap.String("ingredient", ref.Ingredient),
		)
	}
	return idx, nil
}

func (h *Holder) load(ctx context.Context) (*Index, error) {
	data, err := h.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCatalogUnavailable, h.source.Name(), err)
	}
	idx, err := Build(data, Options{
		StrictReferences: h.strict,
		Version:          h.version.Add(1),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return idx, nil
}

// Watch 以固定間隔重新載入目錄，直到 ctx 結束
func (h *Holder) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// 失敗已在 reload 中記錄，保留舊索引繼續服務
			_, _ = h.Reload(ctx)
		}
	}
}
