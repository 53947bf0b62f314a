package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun/migrate"

	migrations "github.com/alfredasare/cloud-dev-final-project/migrations/postgres"
	postgresstore "github.com/alfredasare/cloud-dev-final-project/storage/postgres"
)

func init() {
	rootCmd.AddCommand(newMigrateCommand())
}

func newMigrateCommand() *cobra.Command {
	var databaseURL string

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run todos schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	migrateCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Database connection URL. Defaults to DATABASE_URL.")

	newMigrator := func(ctx context.Context) (*migrate.Migrator, error) {
		dsn := databaseURL
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return nil, fmt.Errorf("database URL required: set --database-url or DATABASE_URL")
		}
		db, err := postgresstore.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return migrate.NewMigrator(db, migrations.Migrations), nil
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := newMigrator(ctx)
			if err != nil {
				return err
			}
			if err := m.Init(ctx); err != nil {
				return err
			}
			group, err := m.Migrate(ctx)
			if err != nil {
				return err
			}
			if group.IsZero() {
				cmd.Println("no new migrations")
				return nil
			}
			cmd.Printf("migrated to %s\n", group)
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := newMigrator(ctx)
			if err != nil {
				return err
			}
			group, err := m.Rollback(ctx)
			if err != nil {
				return err
			}
			if group.IsZero() {
				cmd.Println("nothing to roll back")
				return nil
			}
			cmd.Printf("rolled back %s\n", group)
			return nil
		},
	})

	return migrateCmd
}
