// Package sqlite 以 SQLite 保存食譜目錄，並作為目錄的載入來源
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"recipe-suggester/internal/core/catalog"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

// ErrDatabaseNotFound 資料庫檔案不存在
var ErrDatabaseNotFound = errors.New("catalog database not found")

// Store SQLite 目錄儲存
type Store struct {
	db   *sql.DB
	path string
}

var _ catalog.Source = (*Store)(nil)

// Open 開啟既有的目錄資料庫；檔案不存在時立即失敗，不會建立空資料庫
func Open(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run the seed command first)", ErrDatabaseNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}
	return open(ctx, path)
}

// Create 開啟目錄資料庫，必要時建立檔案與所在目錄
func Create(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return open(ctx, path)
}

func open(ctx context.Context, path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite 只允許單一寫入者
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, path: path}, nil
}

// Name 來源名稱
func (s *Store) Name() string {
	return "sqlite:" + s.path
}

// Close 關閉資料庫連線
func (s *Store) Close() error {
	return s.db.Close()
}

// Load 讀取完整目錄
func (s *Store) Load(ctx context.Context) (*catalog.Data, error) {
	data := &catalog.Data{}

	var err error
	if data.Ingredients, err = s.loadIngredients(ctx); err != nil {
		return nil, err
	}
	if data.Recipes, err = s.loadRecipes(ctx); err != nil {
		return nil, err
	}
	if data.Substitutions, err = s.loadSubstitutions(ctx); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) loadIngredients(ctx context.Context) ([]catalog.Ingredient, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(category, ''), COALESCE(unit, '') FROM ingredients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	var out []catalog.Ingredient
	for rows.Next() {
		var ing catalog.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}
	return out, nil
}

func (s *Store) loadRecipes(ctx context.Context) ([]catalog.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(cuisine, ''), COALESCE(servings, 1), COALESCE(instructions, '')
		FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	var recipes []catalog.Recipe
	pos := make(map[int64]int)
	for rows.Next() {
		var r catalog.Recipe
		if err := rows.Scan(&r.ID, &r.Name, &r.Cuisine, &r.Servings, &r.Instructions); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		pos[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT ri.recipe_id, i.name, ri.optional
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		ORDER BY ri.recipe_id, i.id`)
	if err != nil {
		return nil, fmt.Errorf("querying recipe ingredients: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			recipeID int64
			name     string
			optional bool
		)
		if err := itemRows.Scan(&recipeID, &name, &optional); err != nil {
			return nil, fmt.Errorf("scanning recipe ingredient: %w", err)
		}
		i, ok := pos[recipeID]
		if !ok {
			continue
		}
		if optional {
			recipes[i].Optional = append(recipes[i].Optional, name)
		} else {
			recipes[i].Required = append(recipes[i].Required, name)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe ingredients: %w", err)
	}
	return recipes, nil
}

func (s *Store) loadSubstitutions(ctx context.Context) ([]catalog.Substitution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.name, sub.name, s.score, COALESCE(s.notes, '')
		FROM substitutions s
		JOIN ingredients i ON i.id = s.ingredient_id
		JOIN ingredients sub ON sub.id = s.substitute_id
		ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("querying substitutions: %w", err)
	}
	defer rows.Close()

	var out []catalog.Substitution
	for rows.Next() {
		var sub catalog.Substitution
		if err := rows.Scan(&sub.Ingredient, &sub.Substitute, &sub.Score, &sub.Notes); err != nil {
			return nil, fmt.Errorf("scanning substitution: %w", err)
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating substitutions: %w", err)
	}
	return out, nil
}
