package catalog

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// 未知食材的預設稀有度
const defaultRarity = 0.2

// Options 目錄索引建立選項
type Options struct {
	// StrictReferences 為 true 時，引用不存在的食材視為錯誤；否則記錄後忽略
	StrictReferences bool
	// Version 索引版本號，由 Holder 指定
	Version int64
}

// Edge 一條直接替代邊
type Edge struct {
	Substitute string  `json:"substitute"`
	Score      float64 `json:"score"`
	Notes      string  `json:"notes,omitempty"`
}

// RecipeEntry 索引中的食譜，食材名稱已正規化並排序
type RecipeEntry struct {
	ID       int64
	Name     string
	Cuisine  string
	Servings int
	Required []string
	Optional []string
}

// Index 不可變的目錄快照，建立後可安全地被多個請求同時讀取。
// 重新載入時會建立新的 Index，不會修改既有實例。
type Index struct {
	version  int64
	loadedAt time.Time

	ingredients []Ingredient
	byName      map[string]int
	members     map[string][]string
	edges       map[string][]Edge
	edgeCount   int

	recipes    []RecipeEntry
	popularity map[string]int
	rarity     map[string]float64
	unresolved []UnresolvedRef
}

// Build 由原始資料建立索引
func Build(data *Data, opts Options) (*Index, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil catalog data", ErrInvalidCatalog)
	}

	idx := &Index{
		version:    opts.Version,
		loadedAt:   time.Now(),
		byName:     make(map[string]int, len(data.Ingredients)),
		members:    make(map[string][]string),
		edges:      make(map[string][]Edge),
		popularity: make(map[string]int),
		rarity:     make(map[string]float64),
	}

	if err := idx.indexIngredients(data.Ingredients); err != nil {
		return nil, err
	}
	if err := idx.indexRecipes(data.Recipes, opts.StrictReferences); err != nil {
		return nil, err
	}
	if err := idx.indexSubstitutions(data.Substitutions, opts.StrictReferences); err != nil {
		return nil, err
	}

	for name, pop := range idx.popularity {
		idx.rarity[name] = Rarity(pop)
	}

	return idx, nil
}

// Rarity 稀有度權重：1 / (1 + ln(1 + popularity))
func Rarity(popularity int) float64 {
	return 1.0 / (1.0 + math.Log(1+float64(popularity)))
}

func (idx *Index) indexIngredients(ingredients []Ingredient) error {
	idx.ingredients = make([]Ingredient, 0, len(ingredients))
	for _, ing := range ingredients {
		name := NormalizeName(ing.Name)
		if name == "" {
			return fmt.Errorf("%w: ingredient with empty name (id %d)", ErrInvalidCatalog, ing.ID)
		}
		if _, dup := idx.byName[name]; dup {
			return fmt.Errorf("%w: duplicate ingredient %q", ErrInvalidCatalog, name)
		}
		ing.Name = name
		ing.Category = NormalizeName(ing.Category)

		idx.byName[name] = len(idx.ingredients)
		idx.ingredients = append(idx.ingredients, ing)
		if ing.Category != "" {
			idx.members[ing.Category] = append(idx.members[ing.Category], name)
		}
	}
	return nil
}

func (idx *Index) indexRecipes(recipes []Recipe, strict bool) error {
	if len(recipes) == 0 {
		return ErrCatalogEmpty
	}

	seen := make(map[int64]bool, len(recipes))
	idx.recipes = make([]RecipeEntry, 0, len(recipes))
	for _, r := range recipes {
		if r.ID <= 0 {
			return fmt.Errorf("%w: recipe %q has no id", ErrInvalidCatalog, r.Name)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate recipe id %d", ErrInvalidCatalog, r.ID)
		}
		seen[r.ID] = true

		owner := fmt.Sprintf("recipe:%d", r.ID)
		required, err := idx.resolveNames(owner, r.Required, nil, strict)
		if err != nil {
			return err
		}
		// 同時出現在必要與選用時只保留為必要食材
		optional, err := idx.resolveNames(owner, r.Optional, required, strict)
		if err != nil {
			return err
		}

		for name := range required {
			idx.popularity[name]++
		}
		for name := range optional {
			idx.popularity[name]++
		}

		servings := r.Servings
		if servings <= 0 {
			servings = 1
		}
		idx.recipes = append(idx.recipes, RecipeEntry{
			ID:       r.ID,
			Name:     r.Name,
			Cuisine:  r.Cuisine,
			Servings: servings,
			Required: sortedKeys(required),
			Optional: sortedKeys(optional),
		})
	}

	sort.Slice(idx.recipes, func(i, j int) bool {
		return idx.recipes[i].ID < idx.recipes[j].ID
	})
	return nil
}

// resolveNames 正規化食材名稱，排除 exclude 中已有的名稱
func (idx *Index) resolveNames(owner string, names []string, exclude map[string]struct{}, strict bool) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		if _, ok := idx.byName[name]; !ok {
			if strict {
				return nil, fmt.Errorf("%w: %s references unknown ingredient %q", ErrInvalidCatalog, owner, name)
			}
			idx.unresolved = append(idx.unresolved, UnresolvedRef{Owner: owner, Ingredient: name})
			continue
		}
		if _, skip := exclude[name]; skip {
			continue
		}
		out[name] = struct{}{}
	}
	return out, nil
}

func (idx *Index) indexSubstitutions(subs []Substitution, strict bool) error {
	pos := make(map[[2]string]int)
	for _, s := range subs {
		from := NormalizeName(s.Ingredient)
		to := NormalizeName(s.Substitute)
		if s.Score < 0 || s.Score > 1 || math.IsNaN(s.Score) {
			return fmt.Errorf("%w: substitution %q -> %q has score %v outside [0,1]", ErrInvalidCatalog, from, to, s.Score)
		}

		missing := ""
		if _, ok := idx.byName[from]; !ok {
			missing = from
		} else if _, ok := idx.byName[to]; !ok {
			missing = to
		}
		if missing != "" {
			if strict {
				return fmt.Errorf("%w: substitution %q -> %q references unknown ingredient %q", ErrInvalidCatalog, from, to, missing)
			}
			idx.unresolved = append(idx.unresolved, UnresolvedRef{Owner: "substitution", Ingredient: missing})
			continue
		}
		if from == to {
			continue
		}

		key := [2]string{from, to}
		if i, dup := pos[key]; dup {
			if s.Score > idx.edges[from][i].Score {
				idx.edges[from][i] = Edge{Substitute: to, Score: s.Score, Notes: s.Notes}
			}
			continue
		}
		pos[key] = len(idx.edges[from])
		idx.edges[from] = append(idx.edges[from], Edge{Substitute: to, Score: s.Score, Notes: s.Notes})
		idx.edgeCount++
	}

	for from := range idx.edges {
		edges := idx.edges[from]
		sort.SliceStable(edges, func(i, j int) bool {
			return edges[i].Score > edges[j].Score
		})
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Version 索引版本號
func (idx *Index) Version() int64 { return idx.version }

// LoadedAt 索引建立時間
func (idx *Index) LoadedAt() time.Time { return idx.loadedAt }

// Ingredient 以正規化名稱查找食材
func (idx *Index) Ingredient(name string) (Ingredient, bool) {
	i, ok := idx.byName[name]
	if !ok {
		return Ingredient{}, false
	}
	return idx.ingredients[i], true
}

// Ingredients 依目錄順序回傳所有食材（副本）
func (idx *Index) Ingredients() []Ingredient {
	out := make([]Ingredient, len(idx.ingredients))
	copy(out, idx.ingredients)
	return out
}

// Names 依目錄順序走訪所有食材名稱，fn 回傳 false 時停止
func (idx *Index) Names(fn func(name string) bool) {
	for _, ing := range idx.ingredients {
		if !fn(ing.Name) {
			return
		}
	}
}

// CategoryMembers 回傳同類別的食材名稱（目錄順序），呼叫者不可修改
func (idx *Index) CategoryMembers(category string) []string {
	return idx.members[category]
}

// Substitutions 回傳食材的直接替代邊（分數由高到低），呼叫者不可修改
func (idx *Index) Substitutions(name string) []Edge {
	return idx.edges[name]
}

// Recipes 依 ID 排序回傳所有食譜，呼叫者不可修改
func (idx *Index) Recipes() []RecipeEntry {
	return idx.recipes
}

// Popularity 使用此食材的食譜數
func (idx *Index) Popularity(name string) int {
	return idx.popularity[name]
}

// Rarity 食材稀有度，未被任何食譜引用時回傳預設值
func (idx *Index) Rarity(name string) float64 {
	if r, ok := idx.rarity[name]; ok {
		return r
	}
	return defaultRarity
}

// Unresolved 載入時被忽略的未知食材引用
func (idx *Index) Unresolved() []UnresolvedRef {
	out := make([]UnresolvedRef, len(idx.unresolved))
	copy(out, idx.unresolved)
	return out
}

// Stats 目錄統計
func (idx *Index) Stats() Stats {
	return Stats{
		Version:       idx.version,
		Recipes:       len(idx.recipes),
		Ingredients:   len(idx.ingredients),
		Categories:    len(idx.members),
		Substitutions: idx.edgeCount,
		Unresolved:    len(idx.unresolved),
	}
}
