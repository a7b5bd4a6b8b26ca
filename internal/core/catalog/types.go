package catalog

import "errors"

var (
	// ErrCatalogUnavailable 目錄尚未載入或載入失敗
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrCatalogEmpty 目錄中沒有任何食譜
	ErrCatalogEmpty = errors.New("catalog contains no recipes")
	// ErrInvalidCatalog 目錄資料違反約束
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Ingredient 食材
type Ingredient struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"` // 僅供顯示，不參與評分
}

// Recipe 食譜及其必要/選用食材名稱
type Recipe struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Cuisine      string   `json:"cuisine,omitempty"`
	Servings     int      `json:"servings,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Required     []string `json:"required"`
	Optional     []string `json:"optional,omitempty"`
}

// Substitution 有向替代關係：Ingredient 可由 Substitute 取代
type Substitution struct {
	Ingredient string  `json:"ingredient"`
	Substitute string  `json:"substitute"`
	Score      float64 `json:"score"`
	Notes      string  `json:"notes,omitempty"`
}

// Data 來源回傳的原始目錄內容
type Data struct {
	Ingredients   []Ingredient   `json:"ingredients"`
	Recipes       []Recipe       `json:"recipes"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
}

// UnresolvedRef 引用了目錄中不存在的食材
type UnresolvedRef struct {
	Owner      string `json:"owner"` // "recipe:<id>" 或 "substitution"
	Ingredient string `json:"ingredient"`
}

// Stats 目錄統計
type Stats struct {
	Version       int64 `json:"version"`
	Recipes       int   `json:"recipes"`
	Ingredients   int   `json:"ingredients"`
	Categories    int   `json:"categories"`
	Substitutions int   `json:"substitutions"`
	Unresolved    int   `json:"unresolved_refs"`
}
