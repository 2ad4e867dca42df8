package cli

import (
	"fmt"

	"quiz-backend/internal/database"
	"quiz-backend/internal/models"
	"quiz-backend/internal/services"
	"quiz-backend/internal/store/postgres"

	"github.com/spf13/cobra"
)

// newPromoteCmd changes a user's role. Roles are not writable over HTTP, so
// this is how the first admin is created.
func newPromoteCmd(configPath *string) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Set the role of a registered user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPostgresConfig(*configPath)
			if err != nil {
				return err
			}

			db, err := database.Init(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			st := postgres.New(db)
			defer st.Close()

			auth := services.NewAuthService(st, services.NewTokenService(cfg.JWTSecret))
			if err := auth.SetRole(cmd.Context(), args[0], models.UserRole(role)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], role)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(models.UserRoleAdmin), "role to assign (user or admin)")
	return cmd
}
