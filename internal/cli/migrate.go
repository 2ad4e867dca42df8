package cli

import (
	"errors"

	"quiz-backend/internal/config"
	"quiz-backend/internal/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	var upSteps int
	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPostgresConfig(*configPath)
			if err != nil {
				return err
			}
			return database.Migrate(cfg.DatabaseURL, upSteps)
		},
	}
	up.Flags().IntVar(&upSteps, "steps", 0, "number of migrations to apply (0 = all)")

	var downSteps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if downSteps <= 0 {
				return errors.New("--steps must be positive")
			}
			cfg, err := loadPostgresConfig(*configPath)
			if err != nil {
				return err
			}
			return database.Migrate(cfg.DatabaseURL, -downSteps)
		},
	}
	down.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}

func loadPostgresConfig(path string) (*config.Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.StoreDriver != config.StorePostgres {
		return nil, errors.New("migrations need the postgres store driver")
	}
	return cfg, nil
}
