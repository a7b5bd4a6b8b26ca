package matcher

// Reason 替代候選的來源
type Reason string

const (
	// ReasonDirect 目錄中明確定義的替代關係
	ReasonDirect Reason = "direct"
	// ReasonCategory 同類別食材
	ReasonCategory Reason = "category"
	// ReasonFuzzy 名稱子字串相符
	ReasonFuzzy Reason = "fuzzy"
)

// 各策略的固定分數與預設上限
const (
	CategoryScore          = 0.45
	FuzzyScore             = 0.40
	DefaultSubstituteLimit = 6
)

// 評分權重
const (
	weightMatch           = 0.7
	weightSubstitution    = 0.18
	weightRarity          = 0.02
	weightOptionalPenalty = 0.04
	rarityStep            = 0.05
)

// Candidate 一個替代候選
type Candidate struct {
	Name   string  `json:"substitute"`
	Score  float64 `json:"score"`
	Reason Reason  `json:"reason"`
}

// SubstitutionChoice 為缺少的必要食材選定的替代品
type SubstitutionChoice struct {
	Substitute string  `json:"substitute"`
	Score      float64 `json:"score"`
	Reason     Reason  `json:"reason"`
}

// Breakdown 評分細項
type Breakdown struct {
	MatchFraction        float64 `json:"match_fraction"`
	SubstitutionFraction float64 `json:"substitution_fraction"`
	RarityBonus          float64 `json:"rarity_bonus"`
	OptionalPenalty      float64 `json:"optional_penalty"`
}

// Suggestion 一筆食譜推薦
type Suggestion struct {
	RecipeID           int64                         `json:"recipe_id"`
	Name               string                        `json:"name"`
	Cuisine            string                        `json:"cuisine"`
	Servings           int                           `json:"servings"`
	Score              float64                       `json:"score"`
	RequiredCount      int                           `json:"required_count"`
	MatchedCount       int                           `json:"matched_count"`
	MissingIngredients []string                      `json:"missing_ingredients"`
	SubstitutionPlan   map[string]SubstitutionChoice `json:"substitution_plan"`
	Breakdown          Breakdown                     `json:"breakdown"`
}
