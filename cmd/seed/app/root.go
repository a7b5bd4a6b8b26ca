// Package app 建立並填充食譜目錄資料庫的命令列工具
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/infrastructure/store/sqlite"
	"recipe-suggester/internal/pkg/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	dbPath   string
	reset    bool
	export   string
	logLevel string
}

// NewRootCmd 建立 seed 命令
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:               "seed",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Create the recipe catalog database and load the sample catalog",
		Long: `seed applies the schema migrations to the catalog database and inserts the
built-in sample catalog. References to ingredients missing from the catalog are
skipped and reported. With --export the resulting catalog is also written as a
JSON snapshot usable with the "file" catalog driver.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dbPath, "db", "", "Catalog database path (default: catalog.path from config)")
	cmd.Flags().BoolVar(&opts.reset, "reset", false, "Delete existing catalog rows before seeding")
	cmd.Flags().StringVar(&opts.export, "export", "", "Also write the seeded catalog as a JSON snapshot to this path")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (default: log_level from config)")

	return cmd
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.dbPath == "" {
		opts.dbPath = cfg.Catalog.Path
	}
	if opts.logLevel == "" {
		opts.logLevel = cfg.LogLevel
	}
	if err := common.InitLogger(opts.logLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	common.LogInfo("開始建立食譜目錄", zap.String("db", opts.dbPath), zap.Bool("reset", opts.reset))

	store, err := sqlite.Create(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.Seed(ctx, sqlite.SampleData(), opts.reset)
	if err != nil {
		return err
	}
	for _, ref := range report.Skipped {
		common.LogWarn("Skipped reference to unknown ingredient",
			zap.String("owner", ref.Owner),
			zap.String("ingredient", ref.Ingredient),
		)
	}
	common.LogInfo("食譜目錄建立完成",
		zap.Int("ingredients", report.Ingredients),
		zap.Int("recipes", report.Recipes),
		zap.Int("substitutions", report.Substitutions),
		zap.Int("skipped", len(report.Skipped)),
	)

	if opts.export != "" {
		return export(ctx, store, opts.export)
	}
	return nil
}

// export 將資料庫內容寫成 JSON 快照，寫入前先確認可建立有效的索引
func export(ctx context.Context, source catalog.Source, path string) error {
	data, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog for export: %w", err)
	}
	if _, err := catalog.Build(data, catalog.Options{StrictReferences: true}); err != nil {
		return fmt.Errorf("refusing to export invalid catalog: %w", err)
	}

	raw, err := common.ToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return fmt.Errorf("failed to write catalog snapshot: %w", err)
	}
	common.LogInfo("目錄快照已匯出", zap.String("path", path))
	return nil
}
