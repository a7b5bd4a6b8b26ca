// Package main is the entry point for the catalog seeding command
package main

import (
	"os"

	"recipe-suggester/cmd/seed/app"
	"recipe-suggester/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		common.LogError("Seeding failed", zap.Error(err))
		common.Sync()
		os.Exit(1)
	}
	common.Sync()
}
