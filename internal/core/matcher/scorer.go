package matcher

import (
	"math"
	"sort"

	"recipe-suggester/internal/core/catalog"
)

// Scorer 依食材庫存對目錄中每個食譜評分並排序
type Scorer struct {
	idx             *catalog.Index
	resolver        *Resolver
	substituteLimit int
}

// NewScorer 創建評分器，substituteLimit <= 0 時使用 DefaultSubstituteLimit
func NewScorer(idx *catalog.Index, substituteLimit int) *Scorer {
	if substituteLimit <= 0 {
		substituteLimit = DefaultSubstituteLimit
	}
	return &Scorer{
		idx:             idx,
		resolver:        NewResolver(idx),
		substituteLimit: substituteLimit,
	}
}

type scored struct {
	suggestion Suggestion
	raw        float64
}

// Suggest 回傳最多 maxResults 筆推薦（maxResults 至少為 1），
// 依分數、相符數量（多者優先）、必要食材數量（少者優先）、食譜 ID 排序。
func (s *Scorer) Suggest(pantry []string, maxResults int, allowSubstitution bool) []Suggestion {
	if maxResults < 1 {
		maxResults = 1
	}
	have := catalog.NormalizeSet(pantry)

	// 同一請求中缺少的食材替代結果相同，只解析一次
	choices := make(map[string]*SubstitutionChoice)
	choose := func(missing string) *SubstitutionChoice {
		if c, ok := choices[missing]; ok {
			return c
		}
		c := s.chooseSubstitute(missing, have)
		choices[missing] = c
		return c
	}

	recipes := s.idx.Recipes()
	candidates := make([]scored, 0, len(recipes))
	for i := range recipes {
		candidates = append(candidates, s.scoreRecipe(&recipes[i], have, allowSubstitution, choose))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.raw != b.raw {
			return a.raw > b.raw
		}
		if a.suggestion.MatchedCount != b.suggestion.MatchedCount {
			return a.suggestion.MatchedCount > b.suggestion.MatchedCount
		}
		if a.suggestion.RequiredCount != b.suggestion.RequiredCount {
			return a.suggestion.RequiredCount < b.suggestion.RequiredCount
		}
		return a.suggestion.RecipeID < b.suggestion.RecipeID
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	out := make([]Suggestion, len(candidates))
	for i, c := range candidates {
		out[i] = c.suggestion
	}
	return out
}

func (s *Scorer) scoreRecipe(r *catalog.RecipeEntry, have map[string]struct{}, allowSubstitution bool, choose func(string) *SubstitutionChoice) scored {
	var missing []string
	rarityBonus := 0.0
	for _, ing := range r.Required {
		if _, ok := have[ing]; ok {
			rarityBonus += rarityStep * s.idx.Rarity(ing)
			continue
		}
		missing = append(missing, ing)
	}

	optionalMissing := 0
	for _, ing := range r.Optional {
		if _, ok := have[ing]; !ok {
			optionalMissing++
		}
	}

	plan := make(map[string]SubstitutionChoice)
	stillMissing := make([]string, 0, len(missing))
	for _, ing := range missing {
		if allowSubstitution {
			if c := choose(ing); c != nil {
				plan[ing] = *c
				continue
			}
		}
		stillMissing = append(stillMissing, ing)
	}

	reqCount := len(r.Required)
	if reqCount < 1 {
		reqCount = 1
	}
	matched := reqCount - len(stillMissing)
	breakdown := Breakdown{
		MatchFraction:        float64(matched) / float64(reqCount),
		SubstitutionFraction: float64(len(plan)) / float64(reqCount),
		RarityBonus:          rarityBonus,
		OptionalPenalty:      float64(optionalMissing) / float64(len(r.Optional)+1),
	}

	raw := weightMatch*breakdown.MatchFraction +
		weightSubstitution*breakdown.SubstitutionFraction +
		weightRarity*breakdown.RarityBonus -
		weightOptionalPenalty*breakdown.OptionalPenalty
	raw = math.Max(0, math.Min(1, raw))

	// Required 已排序，stillMissing 保持相同順序
	return scored{
		raw: raw,
		suggestion: Suggestion{
			RecipeID:           r.ID,
			Name:               r.Name,
			Cuisine:            r.Cuisine,
			Servings:           r.Servings,
			Score:              math.Round(raw*1000) / 1000,
			RequiredCount:      reqCount,
			MatchedCount:       matched,
			MissingIngredients: stillMissing,
			SubstitutionPlan:   plan,
			Breakdown:          breakdown,
		},
	}
}

// chooseSubstitute 在庫存中的候選裡選出分數最高者，沒有則回傳 nil
func (s *Scorer) chooseSubstitute(missing string, have map[string]struct{}) *SubstitutionChoice {
	var chosen *SubstitutionChoice
	best := 0.0
	for _, c := range s.resolver.FindSubstitutes(missing, s.substituteLimit) {
		if _, ok := have[c.Name]; !ok || c.Score <= best {
			continue
		}
		best = c.Score
		chosen = &SubstitutionChoice{Substitute: c.Name, Score: c.Score, Reason: c.Reason}
	}
	return chosen
}
