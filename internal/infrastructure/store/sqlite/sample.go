package sqlite

import "recipe-suggester/internal/core/catalog"

// SampleData 內建的示範目錄
func SampleData() SeedData {
	return SeedData{
		Ingredients: []catalog.Ingredient{
			{Name: "flour", Category: "baking", Unit: "g"},
			{Name: "maida", Category: "baking", Unit: "g"},
			{Name: "wheat flour", Category: "grain", Unit: "g"},
			{Name: "rice", Category: "grain", Unit: "g"},
			{Name: "basmati rice", Category: "grain", Unit: "g"},
			{Name: "poha", Category: "grain", Unit: "g"},
			{Name: "rava", Category: "grain", Unit: "g"},
			{Name: "semolina", Category: "grain", Unit: "g"},
			{Name: "sugar", Category: "sweetener", Unit: "g"},
			{Name: "salt", Category: "spice", Unit: "g"},
			{Name: "turmeric", Category: "spice", Unit: "g"},
			{Name: "red chili", Category: "spice", Unit: "g"},
			{Name: "green chili", Category: "spice", Unit: "pcs"},
			{Name: "garlic", Category: "vegetable", Unit: "cloves"},
			{Name: "onion", Category: "vegetable", Unit: "pcs"},
			{Name: "tomato", Category: "vegetable", Unit: "pcs"},
			{Name: "potato", Category: "vegetable", Unit: "pcs"},
			{Name: "mustard seeds", Category: "spice", Unit: "g"},
			{Name: "cumin seeds", Category: "spice", Unit: "g"},
			{Name: "coriander powder", Category: "spice", Unit: "g"},
			{Name: "garam masala", Category: "spice", Unit: "g"},
			{Name: "tur dal", Category: "legume", Unit: "g"},
			{Name: "moong dal", Category: "legume", Unit: "g"},
			{Name: "chana dal", Category: "legume", Unit: "g"},
			{Name: "urad dal", Category: "legume", Unit: "g"},
			{Name: "lentils", Category: "legume", Unit: "g"},
			{Name: "toor dal", Category: "legume", Unit: "g"},
			{Name: "curry leaves", Category: "herb", Unit: "g"},
			{Name: "ginger", Category: "vegetable", Unit: "g"},
			{Name: "coconut", Category: "fruit", Unit: "g"},
			{Name: "coriander", Category: "herb", Unit: "g"},
			{Name: "fenugreek", Category: "herb", Unit: "g"},
			{Name: "besan", Category: "flour", Unit: "g"},
			{Name: "yogurt", Category: "dairy", Unit: "ml"},
			{Name: "curd", Category: "dairy", Unit: "ml"},
			{Name: "milk", Category: "dairy", Unit: "ml"},
			{Name: "butter", Category: "dairy", Unit: "g"},
			{Name: "ghee", Category: "dairy", Unit: "g"},
			{Name: "margarine", Category: "dairy", Unit: "g"},
			{Name: "oil", Category: "oil", Unit: "ml"},
			{Name: "olive oil", Category: "oil", Unit: "ml"},
			{Name: "cooking oil", Category: "oil", Unit: "ml"},
			{Name: "sesame oil", Category: "oil", Unit: "ml"},
			{Name: "pav buns", Category: "bakery", Unit: "pcs"},
			{Name: "bread", Category: "bakery", Unit: "slices"},
			{Name: "tomato puree", Category: "canned", Unit: "ml"},
			{Name: "green peas", Category: "vegetable", Unit: "g"},
			{Name: "spinach", Category: "vegetable", Unit: "g"},
			{Name: "egg", Category: "protein", Unit: "pcs"},
			{Name: "paneer", Category: "dairy", Unit: "g"},
			{Name: "chili powder", Category: "spice", Unit: "g"},
			{Name: "tamarind", Category: "fruit", Unit: "g"},
			{Name: "jaggery", Category: "sweetener", Unit: "g"},
			{Name: "peanuts", Category: "nut", Unit: "g"},
			{Name: "coconut oil", Category: "oil", Unit: "ml"},
			{Name: "vinegar", Category: "condiment", Unit: "ml"},
			{Name: "ginger-garlic paste", Category: "condiment", Unit: "g"},
			{Name: "asafoetida", Category: "spice", Unit: "g"},
		},
		Recipes: []SeedRecipe{
			{
				Name:         "Pesarattu (moong dal dosa)",
				Cuisine:      "Telugu",
				Servings:     2,
				Instructions: "Soak moong dal, grind, ferment slightly, cook like dosa.",
				Items: []RecipeItem{
					{Ingredient: "moong dal", Qty: 200, Unit: "g"},
					{Ingredient: "rice", Qty: 50, Unit: "g"},
					{Ingredient: "green chili", Qty: 2, Unit: "pcs"},
					{Ingredient: "ginger", Qty: 10, Unit: "g"},
					{Ingredient: "salt", Qty: 2, Unit: "g"},
				},
			},
			{
				Name:         "Pulihora (tamarind rice)",
				Cuisine:      "Telugu",
				Servings:     3,
				Instructions: "Cook rice; prepare tamarind tempering; mix and serve.",
				Items: []RecipeItem{
					{Ingredient: "rice", Qty: 300, Unit: "g"},
					{Ingredient: "tamarind", Qty: 30, Unit: "g"},
					{Ingredient: "mustard seeds", Qty: 3, Unit: "g"},
					{Ingredient: "peanuts", Qty: 30, Unit: "g", Optional: true},
					{Ingredient: "curry leaves", Qty: 5, Unit: "g", Optional: true},
				},
			},
			{
				Name:         "Hyderabadi Biryani (veg)",
				Cuisine:      "Telugu",
				Servings:     4,
				Instructions: "Layer cooked rice with spiced vegetables and dum cook.",
				Items: []RecipeItem{
					{Ingredient: "basmati rice", Qty: 300, Unit: "g"},
					{Ingredient: "onion", Qty: 2, Unit: "pcs"},
					{Ingredient: "tomato", Qty: 2, Unit: "pcs"},
					{Ingredient: "yogurt", Qty: 100, Unit: "ml"},
					{Ingredient: "garam masala", Qty: 5, Unit: "g"},
					{Ingredient: "oil", Qty: 40, Unit: "ml"},
				},
			},
			{
				Name:         "Sambar",
				Cuisine:      "South Indian",
				Servings:     4,
				Instructions: "Cook toor dal; add vegetables and sambar masala and tamarind.",
				Items: []RecipeItem{
					{Ingredient: "toor dal", Qty: 200, Unit: "g"},
					{Ingredient: "tamarind", Qty: 20, Unit: "g"},
					{Ingredient: "drumstick", Qty: 0, Unit: "", Optional: true},
					{Ingredient: "turmeric", Qty: 2, Unit: "g"},
					{Ingredient: "sambar masala", Qty: 10, Unit: "g"},
				},
			},
			{
				Name:         "Khichdi",
				Cuisine:      "Gujarati",
				Servings:     3,
				Instructions: "Cook rice and moong dal together with turmeric and salt.",
				Items: []RecipeItem{
					{Ingredient: "rice", Qty: 200, Unit: "g"},
					{Ingredient: "moong dal", Qty: 100, Unit: "g"},
					{Ingredient: "turmeric", Qty: 2, Unit: "g"},
					{Ingredient: "ghee", Qty: 10, Unit: "g", Optional: true},
				},
			},
			{
				Name:         "Khandvi",
				Cuisine:      "Gujarati",
				Servings:     4,
				Instructions: "Make gram flour batter, spread thin and roll.",
			},
			{
				Name:         "Dhokla",
				Cuisine:      "Gujarati",
				Servings:     4,
				Instructions: "Ferment besan batter with eno and steam.",
				Items: []RecipeItem{
					{Ingredient: "besan", Qty: 200, Unit: "g"},
					{Ingredient: "yogurt", Qty: 100, Unit: "ml"},
					{Ingredient: "eno", Qty: 5, Unit: "g"},
				},
			},
			{
				Name:         "Thepla",
				Cuisine:      "Gujarati",
				Servings:     6,
				Instructions: "Make soft dough with wheat flour and methi, roll and cook on tawa.",
				Items: []RecipeItem{
					{Ingredient: "wheat flour", Qty: 250, Unit: "g"},
					{Ingredient: "fenugreek", Qty: 20, Unit: "g"},
					{Ingredient: "turmeric", Qty: 1, Unit: "g"},
					{Ingredient: "oil", Qty: 10, Unit: "ml"},
				},
			},
			{
				Name:         "Pithla Bhakri (besan curry & flatbread)",
				Cuisine:      "Marathi",
				Servings:     3,
				Instructions: "Make pithla from besan and spices; serve with bhakri or roti.",
				Items: []RecipeItem{
					{Ingredient: "besan", Qty: 150, Unit: "g"},
					{Ingredient: "onion", Qty: 1, Unit: "pcs", Optional: true},
					{Ingredient: "garlic", Qty: 3, Unit: "cloves"},
					{Ingredient: "oil", Qty: 20, Unit: "ml"},
				},
			},
			{
				Name:         "Misal Pav",
				Cuisine:      "Marathi",
				Servings:     4,
				Instructions: "Cook sprouted matki curry, top with farsan, serve with pav.",
				Items: []RecipeItem{
					{Ingredient: "moong dal", Qty: 150, Unit: "g"},
					{Ingredient: "onion", Qty: 1, Unit: "pcs"},
					{Ingredient: "garlic", Qty: 2, Unit: "cloves"},
					{Ingredient: "pav buns", Qty: 4, Unit: "pcs"},
				},
			},
			{
				Name:         "Poha",
				Cuisine:      "Marathi",
				Servings:     2,
				Instructions: "Flattened rice tempered with mustard, curry leaves, peanuts and turmeric.",
				Items: []RecipeItem{
					{Ingredient: "poha", Qty: 200, Unit: "g"},
					{Ingredient: "mustard seeds", Qty: 2, Unit: "g"},
					{Ingredient: "peanuts", Qty: 30, Unit: "g", Optional: true},
					{Ingredient: "turmeric", Qty: 1, Unit: "g"},
				},
			},
			{
				Name:         "Vada Pav",
				Cuisine:      "Marathi",
				Servings:     2,
				Instructions: "Spiced potato filling battered in besan fried and served in pav.",
				Items: []RecipeItem{
					{Ingredient: "potato", Qty: 300, Unit: "g"},
					{Ingredient: "besan", Qty: 100, Unit: "g"},
					{Ingredient: "pav buns", Qty: 4, Unit: "pcs"},
				},
			},
			{
				Name:         "Pancakes",
				Cuisine:      "International",
				Servings:     4,
				Instructions: "Mix flour, milk, egg and cook on skillet.",
				Items: []RecipeItem{
					{Ingredient: "flour", Qty: 200, Unit: "g"},
					{Ingredient: "milk", Qty: 300, Unit: "ml"},
					{Ingredient: "egg", Qty: 2, Unit: "pcs"},
					{Ingredient: "sugar", Qty: 30, Unit: "g"},
					{Ingredient: "butter", Qty: 20, Unit: "g", Optional: true},
				},
			},
			{
				Name:         "Tomato Pasta",
				Cuisine:      "Italian",
				Servings:     2,
				Instructions: "Cook pasta, prepare tomato garlic sauce.",
				Items: []RecipeItem{
					{Ingredient: "pasta", Qty: 200, Unit: "g"},
					{Ingredient: "tomato", Qty: 3, Unit: "pcs"},
					{Ingredient: "garlic", Qty: 2, Unit: "cloves"},
					{Ingredient: "olive oil", Qty: 20, Unit: "ml"},
					{Ingredient: "basil", Qty: 5, Unit: "g", Optional: true},
				},
			},
		},
		Substitutions: []catalog.Substitution{
			{Ingredient: "butter", Substitute: "margarine", Score: 0.8, Notes: "Margarine often works instead of butter."},
			{Ingredient: "ghee", Substitute: "oil", Score: 0.6, Notes: "Oil can substitute for ghee, flavour differs."},
			{Ingredient: "yogurt", Substitute: "curd", Score: 0.95, Notes: "Yogurt and curd are equivalent in most Indian kitchens."},
			{Ingredient: "basmati rice", Substitute: "rice", Score: 0.9, Notes: "Any long-grain rice can substitute for basmati in many recipes."},
			{Ingredient: "olive oil", Substitute: "cooking oil", Score: 0.85, Notes: "Any neutral cooking oil works."},
			{Ingredient: "moong dal", Substitute: "toor dal", Score: 0.5, Notes: "Legumes can substitute but cooking times differ."},
			{Ingredient: "ghee", Substitute: "butter", Score: 0.9, Notes: "Butter can often replace ghee."},
		},
	}
}
