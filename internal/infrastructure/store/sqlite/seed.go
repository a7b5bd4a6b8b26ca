package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"recipe-suggester/internal/core/catalog"
)

// RecipeItem 食譜中的一項食材與用量
type RecipeItem struct {
	Ingredient string
	Qty        float64
	Unit       string
	Optional   bool
}

// SeedRecipe 待寫入的食譜
type SeedRecipe struct {
	Name         string
	Cuisine      string
	Servings     int
	Instructions string
	Items        []RecipeItem
}

// SeedData 待寫入的完整目錄
type SeedData struct {
	Ingredients   []catalog.Ingredient
	Recipes       []SeedRecipe
	Substitutions []catalog.Substitution
}

// SeedReport 寫入結果；引用未知食材的項目會被略過並列於 Skipped
type SeedReport struct {
	Ingredients   int
	Recipes       int
	Substitutions int
	Skipped       []catalog.UnresolvedRef
}

// Seed 在單一交易中寫入目錄資料；reset 為 true 時先清空既有資料。
// 重複寫入相同資料不會產生重複列。
func (s *Store) Seed(ctx context.Context, data SeedData, reset bool) (SeedReport, error) {
	var report SeedReport

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return report, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollback(tx)

	if reset {
		for _, table := range []string{"substitutions", "recipe_ingredients", "recipes", "ingredients"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return report, fmt.Errorf("clearing %s: %w", table, err)
			}
		}
	}

	for _, ing := range data.Ingredients {
		name := catalog.NormalizeName(ing.Name)
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO ingredients (name, category, unit) VALUES (?, ?, ?)`,
			name, ing.Category, ing.Unit,
		); err != nil {
			return report, fmt.Errorf("inserting ingredient %q: %w", name, err)
		}
	}

	for _, r := range data.Recipes {
		recipeID, err := upsertRecipe(ctx, tx, r)
		if err != nil {
			return report, err
		}
		for _, item := range r.Items {
			name := catalog.NormalizeName(item.Ingredient)
			ingredientID, ok, err := lookupIngredient(ctx, tx, name)
			if err != nil {
				return report, err
			}
			if !ok {
				report.Skipped = append(report.Skipped, catalog.UnresolvedRef{Owner: "recipe:" + r.Name, Ingredient: name})
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO recipe_ingredients (recipe_id, ingredient_id, qty, unit, optional)
				VALUES (?, ?, ?, ?, ?)`,
				recipeID, ingredientID, item.Qty, item.Unit, item.Optional,
			); err != nil {
				return report, fmt.Errorf("inserting ingredient %q for recipe %q: %w", name, r.Name, err)
			}
		}
	}

	for _, sub := range data.Substitutions {
		from := catalog.NormalizeName(sub.Ingredient)
		to := catalog.NormalizeName(sub.Substitute)
		fromID, okFrom, err := lookupIngredient(ctx, tx, from)
		if err != nil {
			return report, err
		}
		toID, okTo, err := lookupIngredient(ctx, tx, to)
		if err != nil {
			return report, err
		}
		if !okFrom || !okTo {
			missing := from
			if okFrom {
				missing = to
			}
			report.Skipped = append(report.Skipped, catalog.UnresolvedRef{Owner: "substitution", Ingredient: missing})
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO substitutions (ingredient_id, substitute_id, score, notes)
			VALUES (?, ?, ?, ?)`,
			fromID, toID, sub.Score, sub.Notes,
		); err != nil {
			return report, fmt.Errorf("inserting substitution %q -> %q: %w", from, to, err)
		}
	}

	for table, dst := range map[string]*int{
		"ingredients":   &report.Ingredients,
		"recipes":       &report.Recipes,
		"substitutions": &report.Substitutions,
	} {
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(dst); err != nil {
			return report, fmt.Errorf("counting %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("committing seed: %w", err)
	}
	return report, nil
}

func upsertRecipe(ctx context.Context, tx *sql.Tx, r SeedRecipe) (int64, error) {
	servings := r.Servings
	if servings <= 0 {
		servings = 1
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO recipes (name, cuisine, servings, instructions) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET cuisine = excluded.cuisine, servings = excluded.servings, instructions = excluded.instructions`,
		r.Name, r.Cuisine, servings, r.Instructions,
	); err != nil {
		return 0, fmt.Errorf("inserting recipe %q: %w", r.Name, err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM recipes WHERE name = ?`, r.Name).Scan(&id); err != nil {
		return 0, fmt.Errorf("looking up recipe %q: %w", r.Name, err)
	}
	return id, nil
}

func lookupIngredient(ctx context.Context, tx *sql.Tx, name string) (int64, bool, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM ingredients WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("looking up ingredient %q: %w", name, err)
	}
	return id, true, nil
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
