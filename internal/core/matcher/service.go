package matcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"recipe-suggester/internal/core/cache"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/infrastructure/metrics"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

const (
	// MaxPantryItems 單次請求允許的食材數量上限
	MaxPantryItems = 200
	// MaxSubstituteLimit 替代查詢的數量上限
	MaxSubstituteLimit = 20

	cacheKeyPrefix = "suggest"
)

var (
	// ErrInvalidPantry 食材清單不合法
	ErrInvalidPantry = errors.New("invalid pantry")
	// ErrInvalidRequest 請求參數不合法
	ErrInvalidRequest = errors.New("invalid request")
)

// IndexProvider 提供目前的目錄索引
type IndexProvider interface {
	Current() (*catalog.Index, error)
}

// SuggestRequest 推薦請求
type SuggestRequest struct {
	Ingredients       []string `json:"ingredients"`
	MaxResults        int      `json:"max_results"`
	AllowSubstitution *bool    `json:"allow_substitution"`
}

// SuggestResult 推薦結果
type SuggestResult struct {
	Suggestions    []Suggestion `json:"suggestions"`
	CatalogVersion int64        `json:"catalog_version"`
	Cached         bool         `json:"cached"`
}

// SubstitutesResult 替代查詢結果
type SubstitutesResult struct {
	Ingredient     string      `json:"ingredient"`
	Candidates     []Candidate `json:"candidates"`
	CatalogVersion int64       `json:"catalog_version"`
}

// CatalogInfo 目前目錄的摘要
type CatalogInfo struct {
	catalog.Stats
	LoadedAt   time.Time               `json:"loaded_at"`
	Unresolved []catalog.UnresolvedRef `json:"unresolved,omitempty"`
}

// Service 推薦服務，在目前的目錄索引上執行評分並快取結果
type Service struct {
	provider IndexProvider
	cache    cache.Cache
	cfg      config.MatcherConfig
}

// NewService 創建推薦服務；c 為 nil 時不使用快取
func NewService(provider IndexProvider, c cache.Cache, cfg config.MatcherConfig) *Service {
	if cfg.SubstituteLimit <= 0 {
		cfg.SubstituteLimit = DefaultSubstituteLimit
	}
	if cfg.MaxResultsLimit <= 0 {
		cfg.MaxResultsLimit = 100
	}
	if cfg.DefaultMaxResults <= 0 || cfg.DefaultMaxResults > cfg.MaxResultsLimit {
		cfg.DefaultMaxResults = min(20, cfg.MaxResultsLimit)
	}
	return &Service{
		provider: provider,
		cache:    c,
		cfg:      cfg,
	}
}

// Suggest 依食材庫存回傳推薦食譜
func (s *Service) Suggest(ctx context.Context, req SuggestRequest) (*SuggestResult, error) {
	if len(req.Ingredients) > MaxPantryItems {
		return nil, fmt.Errorf("%w: at most %d ingredients allowed, got %d", ErrInvalidPantry, MaxPantryItems, len(req.Ingredients))
	}
	if req.MaxResults < 0 {
		return nil, fmt.Errorf("%w: max_results must not be negative", ErrInvalidRequest)
	}

	idx, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	maxResults := s.clampMaxResults(req.MaxResults)
	allow := req.AllowSubstitution == nil || *req.AllowSubstitution
	key := suggestCacheKey(idx.Version(), req.Ingredients, maxResults, allow)

	if suggestions, ok := s.lookup(ctx, key); ok {
		metrics.RecordSuggest(true, 0)
		return &SuggestResult{
			Suggestions:    suggestions,
			CatalogVersion: idx.Version(),
			Cached:         true,
		}, nil
	}

	start := time.Now()
	suggestions := NewScorer(idx, s.cfg.SubstituteLimit).Suggest(req.Ingredients, maxResults, allow)
	duration := time.Since(start)

	metrics.RecordSuggest(false, duration)
	for _, sg := range suggestions {
		for _, choice := range sg.SubstitutionPlan {
			metrics.RecordSubstitution(string(choice.Reason))
		}
	}
	common.LogDebug("推薦計算完成",
		zap.Int("pantry_size", len(req.Ingredients)),
		zap.Int("max_results", maxResults),
		zap.Bool("allow_substitution", allow),
		zap.Int("results", len(suggestions)),
		zap.Duration("duration", duration),
	)

	s.store(ctx, key, suggestions)

	return &SuggestResult{
		Suggestions:    suggestions,
		CatalogVersion: idx.Version(),
	}, nil
}

// Substitutes 查詢一個食材的替代候選，limit 限制在 [1, MaxSubstituteLimit]，0 使用預設值
func (s *Service) Substitutes(ctx context.Context, name string, limit int) (*SubstitutesResult, error) {
	normalized := catalog.NormalizeName(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", ErrInvalidRequest)
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", ErrInvalidRequest)
	}
	if limit == 0 {
		limit = s.cfg.SubstituteLimit
	}
	limit = min(limit, MaxSubstituteLimit)

	idx, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	candidates := NewResolver(idx).FindSubstitutes(normalized, limit)
	if candidates == nil {
		candidates = []Candidate{}
	}
	return &SubstitutesResult{
		Ingredient:     normalized,
		Candidates:     candidates,
		CatalogVersion: idx.Version(),
	}, nil
}

// Ingredients 依目錄順序列出食材，category 非空時只回傳該類別
func (s *Service) Ingredients(category string) ([]catalog.Ingredient, error) {
	idx, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	all := idx.Ingredients()
	category = catalog.NormalizeName(category)
	if category == "" {
		return all, nil
	}
	out := make([]catalog.Ingredient, 0, len(idx.CategoryMembers(category)))
	for _, ing := range all {
		if ing.Category == category {
			out = append(out, ing)
		}
	}
	return out, nil
}

// CatalogInfo 回傳目前目錄的摘要
func (s *Service) CatalogInfo() (*CatalogInfo, error) {
	idx, err := s.provider.Current()
	if err != nil {
		return nil, err
	}
	return &CatalogInfo{
		Stats:      idx.Stats(),
		LoadedAt:   idx.LoadedAt(),
		Unresolved: idx.Unresolved(),
	}, nil
}

func (s *Service) clampMaxResults(n int) int {
	if n == 0 {
		return s.cfg.DefaultMaxResults
	}
	return max(1, min(n, s.cfg.MaxResultsLimit))
}

func (s *Service) lookup(ctx context.Context, key string) ([]Suggestion, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			common.LogWarn("讀取推薦快取失敗", zap.Error(err))
		}
		metrics.RecordCacheMiss()
		common.LogCacheMiss(cacheKeyPrefix, key)
		return nil, false
	}

	var suggestions []Suggestion
	if err := common.ParseJSON(raw, &suggestions); err != nil {
		common.LogWarn("推薦快取內容無法解析", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheMiss()
		return nil, false
	}
	metrics.RecordCacheHit()
	common.LogCacheHit(cacheKeyPrefix, key)
	return suggestions, true
}

func (s *Service) store(ctx context.Context, key string, suggestions []Suggestion) {
	if s.cache == nil {
		return
	}
	raw, err := common.ToJSON(suggestions)
	if err != nil {
		common.LogWarn("推薦結果序列化失敗", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		common.LogWarn("寫入推薦快取失敗", zap.Error(err))
	}
}

// suggestCacheKey 以目錄版本與正規化後的食材集合組成快取鍵，輸入順序與重複不影響結果
func suggestCacheKey(version int64, pantry []string, maxResults int, allow bool) string {
	set := catalog.NormalizeSet(pantry)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	h.Write([]byte(strings.Join(names, "\x1f")))
	return strings.Join([]string{
		cacheKeyPrefix,
		"v" + strconv.FormatInt(version, 10),
		strconv.Itoa(maxResults),
		strconv.FormatBool(allow),
		hex.EncodeToString(h.Sum(nil)),
	}, ":")
}
