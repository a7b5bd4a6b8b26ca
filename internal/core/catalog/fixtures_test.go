package catalog

// sampleData 測試用的小型目錄
func sampleData() *Data {
	return &Data{
		Ingredients: []Ingredient{
			{ID: 1, Name: "Rice", Category: "grain"},
			{ID: 2, Name: "basmati rice", Category: "grain"},
			{ID: 3, Name: "moong dal", Category: "legume"},
			{ID: 4, Name: "toor dal", Category: "legume"},
			{ID: 5, Name: "turmeric", Category: "spice"},
			{ID: 6, Name: "ghee", Category: "dairy"},
			{ID: 7, Name: "butter", Category: "dairy"},
			{ID: 8, Name: "oil", Category: "oil"},
		},
		Recipes: []Recipe{
			{ID: 2, Name: "Khichdi", Cuisine: "Gujarati", Servings: 3,
				Required: []string{"rice", "moong dal", "turmeric"},
				Optional: []string{"ghee"}},
			{ID: 1, Name: "Biryani", Cuisine: "Telugu", Servings: 4,
				Required: []string{"basmati rice", "oil"}},
		},
		Substitutions: []Substitution{
			{Ingredient: "ghee", Substitute: "oil", Score: 0.6},
			{Ingredient: "ghee", Substitute: "butter", Score: 0.9},
			{Ingredient: "basmati rice", Substitute: "rice", Score: 0.9},
		},
	}
}
