package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sipi-it/slms/pkg/db/migrations"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run pending schema migrations",
		Long:  "Apply all pending schema migrations to the document record store, including the year partition-key backfill.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			migrator := migrations.NewMigrator(rt.records.DB())
			if err := migrator.Migrate(ctx); err != nil {
				return err
			}

			fmt.Println("Migrations complete")
			return nil
		},
	}

	cmd.AddCommand(newMigrateRollbackCommand())
	cmd.AddCommand(newMigrateStatusCommand())

	return cmd
}

func newMigrateRollbackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the last applied migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			migrator := migrations.NewMigrator(rt.records.DB())
			if err := migrator.Rollback(ctx); err != nil {
				return err
			}

			fmt.Println("Rollback complete")
			return nil
		},
	}
}

func newMigrateStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			migrator := migrations.NewMigrator(rt.records.DB())
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return err
			}

			for _, status := range statuses {
				applied := "pending"
				if status.Applied {
					applied = "applied"
				}
				fmt.Printf("%4d  %-8s %s\n", status.Version, applied, status.Description)
			}
			return nil
		},
	}
}
