package matcher

import (
	"sort"
	"strings"

	"recipe-suggester/internal/core/catalog"

	"github.com/agnivade/levenshtein"
)

// Resolver 依序以直接替代、同類別、名稱相似三種策略找出替代食材
type Resolver struct {
	idx *catalog.Index
}

// NewResolver 創建替代解析器
func NewResolver(idx *catalog.Index) *Resolver {
	return &Resolver{idx: idx}
}

// FindSubstitutes 回傳最多 limit 個替代候選，分數由高到低。
// 名稱不在目錄中時先以子字串找出最接近的食材；仍找不到則回傳空結果。
func (r *Resolver) FindSubstitutes(name string, limit int) []Candidate {
	if limit <= 0 {
		return nil
	}
	query := catalog.NormalizeName(name)
	if query == "" {
		return nil
	}

	target, ok := r.resolve(query)
	if !ok {
		return nil
	}

	c := newCollector(limit, query, target.Name)

	for _, e := range r.idx.Substitutions(target.Name) {
		if c.full() {
			break
		}
		c.add(e.Substitute, e.Score, ReasonDirect)
	}

	if target.Category != "" && !c.full() {
		for _, member := range r.idx.CategoryMembers(target.Category) {
			if c.full() {
				break
			}
			c.add(member, CategoryScore, ReasonCategory)
		}
	}

	if !c.full() {
		for _, name := range r.fuzzyMatches(query, target.Name) {
			if c.full() {
				break
			}
			c.add(name, FuzzyScore, ReasonFuzzy)
		}
	}

	return c.result()
}

// resolve 精確查找，失敗時回退為包含 query 的最接近食材
func (r *Resolver) resolve(query string) (catalog.Ingredient, bool) {
	if ing, ok := r.idx.Ingredient(query); ok {
		return ing, true
	}

	best, bestDist := "", -1
	r.idx.Names(func(name string) bool {
		if !strings.Contains(name, query) {
			return true
		}
		if d := levenshtein.ComputeDistance(query, name); bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
		return true
	})
	if best == "" {
		return catalog.Ingredient{}, false
	}
	return r.idx.Ingredient(best)
}

// fuzzyMatches 名稱包含 query（或被 query 包含）的食材，依編輯距離排序
func (r *Resolver) fuzzyMatches(query, exclude string) []string {
	type match struct {
		name string
		dist int
		pos  int
	}
	var matches []match
	r.idx.Names(func(name string) bool {
		if name != exclude && (strings.Contains(name, query) || strings.Contains(query, name)) {
			matches = append(matches, match{
				name: name,
				dist: levenshtein.ComputeDistance(query, name),
				pos:  len(matches),
			})
		}
		return true
	})

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].pos < matches[j].pos
	})

	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// collector 收集不重複的候選，重複時保留較高分
type collector struct {
	limit      int
	exclude    [2]string
	candidates []Candidate
	pos        map[string]int
}

func newCollector(limit int, query, target string) *collector {
	return &collector{
		limit:   limit,
		exclude: [2]string{query, target},
		pos:     make(map[string]int, limit),
	}
}

func (c *collector) full() bool {
	return len(c.candidates) >= c.limit
}

func (c *collector) add(name string, score float64, reason Reason) {
	if name == c.exclude[0] || name == c.exclude[1] {
		return
	}
	if i, ok := c.pos[name]; ok {
		if score > c.candidates[i].Score {
			c.candidates[i] = Candidate{Name: name, Score: score, Reason: reason}
		}
		return
	}
	if c.full() {
		return
	}
	c.pos[name] = len(c.candidates)
	c.candidates = append(c.candidates, Candidate{Name: name, Score: score, Reason: reason})
}

func (c *collector) result() []Candidate {
	out := make([]Candidate, len(c.candidates))
	copy(out, c.candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
