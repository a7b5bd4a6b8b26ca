package matcher

import (
	"testing"

	"recipe-suggester/internal/core/catalog"

	"github.com/stretchr/testify/require"
)

func testData() *catalog.Data {
	return &catalog.Data{
		Ingredients: []catalog.Ingredient{
			{ID: 1, Name: "rice", Category: "grain"},
			{ID: 2, Name: "basmati rice", Category: "grain"},
			{ID: 3, Name: "moong dal", Category: "legume"},
			{ID: 4, Name: "toor dal", Category: "legume"},
			{ID: 5, Name: "turmeric", Category: "spice"},
			{ID: 6, Name: "ghee", Category: "dairy"},
			{ID: 7, Name: "butter", Category: "dairy"},
			{ID: 8, Name: "margarine", Category: "dairy"},
			{ID: 9, Name: "oil", Category: "fat"},
			{ID: 10, Name: "paneer", Category: "dairy"},
			{ID: 11, Name: "salt", Category: "spice"},
		},
		Recipes: []catalog.Recipe{
			{ID: 1, Name: "Khichdi", Cuisine: "Gujarati", Servings: 3,
				Required: []string{"rice", "moong dal", "turmeric"},
				Optional: []string{"ghee"}},
			{ID: 2, Name: "Tadka Dal", Cuisine: "Punjabi", Servings: 4,
				Required: []string{"toor dal", "turmeric", "ghee"},
				Optional: []string{"salt"}},
			{ID: 3, Name: "Butter Spread", Servings: 1,
				Required: []string{"butter"}},
			{ID: 4, Name: "Biryani", Cuisine: "Hyderabadi", Servings: 4,
				Required: []string{"basmati rice", "oil", "salt"}},
		},
		Substitutions: []catalog.Substitution{
			{Ingredient: "butter", Substitute: "margarine", Score: 0.8},
			{Ingredient: "ghee", Substitute: "oil", Score: 0.6},
			{Ingredient: "ghee", Substitute: "butter", Score: 0.9},
			{Ingredient: "basmati rice", Substitute: "rice", Score: 0.9},
		},
	}
}

func buildIndex(t *testing.T, data *catalog.Data) *catalog.Index {
	t.Helper()
	idx, err := catalog.Build(data, catalog.Options{Version: 1})
	require.NoError(t, err)
	return idx
}

// staticProvider 固定回傳同一個索引
type staticProvider struct {
	idx *catalog.Index
}

func (p staticProvider) Current() (*catalog.Index, error) {
	if p.idx == nil {
		return nil, catalog.ErrCatalogUnavailable
	}
	return p.idx, nil
}
