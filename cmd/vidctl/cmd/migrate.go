package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/templui/vidshare/internal/db"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}

	cmd.AddCommand(migrateUpCmd())
	cmd.AddCommand(migrateDownCmd())
	cmd.AddCommand(migrateStatusCmd())
	return cmd
}

func migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			err = db.RunMigrations(cmd.Context(), database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Println("==> Migrations applied")
			return nil
		},
	}
}

func migrateDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			err = db.MigrateDown(cmd.Context(), database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}
			fmt.Println("==> Rolled back one migration")
			return nil
		},
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, database, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			states, err := db.MigrationStatus(cmd.Context(), database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
			for _, s := range states {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
			}
			return tw.Flush()
		},
	}
}
