package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fonsecabarber/barber-api/internal/config"
	"github.com/fonsecabarber/barber-api/internal/repository/postgres"
)

func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the content and appointment tables",
		Long:  "Apply the schema to the database named by DATABASE_URL. Existing tables are left untouched.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.Database.DSN() == "" {
				return fmt.Errorf("no database configured\nHint: set DATABASE_URL")
			}

			db, err := postgres.NewDB(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Schema applied\n", okMark)
			return nil
		},
	}
}
