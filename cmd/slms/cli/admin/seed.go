package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sipi-it/slms/internal/seed"
	"github.com/sipi-it/slms/internal/service"
)

func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo documents",
		Long:  "Upload a small demo dataset through the regular document pipeline. Intended for development and staging environments.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.records.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to prepare schema: %w", err)
			}

			svc := service.NewDocumentService(rt.records, rt.files, rt.resolver, rt.log)
			if err := seed.New(svc, rt.log).Run(ctx); err != nil {
				return err
			}

			fmt.Println("Seeding complete")
			return nil
		},
	}
}
