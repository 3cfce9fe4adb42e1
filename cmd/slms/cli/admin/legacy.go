package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sipi-it/slms/internal/service"
)

func NewLegacyImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "legacy-import",
		Short: "Import files from the legacy flat store",
		Long: `Re-home files from the pre-migration flat layout into the
structured hierarchy, record by record. Obsolete year segments are
stripped and record paths updated. Legacy files are left in place for
archival; the structured copy becomes authoritative.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := setup(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			if rt.legacy == nil {
				return fmt.Errorf("storage.legacy_root is not configured")
			}

			importer := service.NewLegacyImporter(rt.records, rt.files, rt.legacy, rt.log)
			result, err := importer.Run(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Scanned %d records: %d imported (%d relocated), %d skipped, %d failed in %s\n",
				result.Scanned, result.Imported, result.Relocated,
				result.Skipped, result.Failed, result.Duration)
			return nil
		},
	}
}
