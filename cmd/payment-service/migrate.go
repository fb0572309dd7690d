package main

import (
	"fmt"

	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back database migrations",
	Long: `Apply or roll back the SQL migrations under migrations_path.

Examples:
  payment-service migrate
  payment-service migrate down --config config/local.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{migrate.DirectionUp, migrate.DirectionDown},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := migrate.DirectionUp
	if len(args) == 1 {
		direction = args[0]
	}
	if direction != migrate.DirectionUp && direction != migrate.DirectionDown {
		return fmt.Errorf("unknown direction %q, expected up or down", direction)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db := postgres.MustInitDB(cfg)
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return migrate.RunMigrations(db, cfg.MigrationsPath, direction)
}
