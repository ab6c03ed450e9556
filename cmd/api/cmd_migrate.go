package main

import (
	"github.com/Lucas16AR/stock-app/internal/infra/db"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		gormDB, err := db.Connect(cfg)
		if err != nil {
			return err
		}
		if err := db.Migrate(gormDB); err != nil {
			return err
		}
		log.Info("migration done", zap.String("driver", cfg.DBDriver))
		return nil
	},
}
