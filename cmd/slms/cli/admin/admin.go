package admin

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	config "github.com/sipi-it/slms/internal/config/server"
	"github.com/sipi-it/slms/pkg/db/store"
	"github.com/sipi-it/slms/pkg/log"
	legacystore "github.com/sipi-it/slms/pkg/storage/legacy"
	"github.com/sipi-it/slms/pkg/storage/resolver"
	"github.com/sipi-it/slms/pkg/storage/structured"
)

func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative maintenance utilities",
		Long:  "Run schema migrations, seed demo data, import files from the legacy flat store and inspect the storage hierarchy.",
	}

	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())
	cmd.AddCommand(NewLegacyImportCommand())
	cmd.AddCommand(NewTreeCommand())

	return cmd
}

// runtime bundles the components every admin command needs.
type runtime struct {
	cfg      *config.BaseServerConfig
	log      log.LoggerService
	records  store.DocumentStore
	files    *structured.Store
	legacy   *legacystore.Store
	resolver *resolver.Resolver
}

func setup(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load server configuration: %w", err)
	}

	logger := log.NewLoggerService("slms", cfg.Log)

	records, err := store.NewFromConfig(cfg.Metadata)
	if err != nil {
		return nil, err
	}
	if err := records.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect document store: %w", err)
	}

	files, err := structured.New(cfg.Storage.Root)
	if err != nil {
		records.Close()
		return nil, err
	}

	rt := &runtime{
		cfg:     cfg,
		log:     logger,
		records: records,
		files:   files,
	}
	if cfg.Storage.LegacyRoot != "" {
		rt.legacy = legacystore.New(cfg.Storage.LegacyRoot, logger)
	}
	rt.resolver = resolver.New(files, readerOrNil(rt.legacy))

	return rt, nil
}

// readerOrNil keeps a nil *legacystore.Store from becoming a non-nil
// interface value inside the resolver.
func readerOrNil(s *legacystore.Store) resolver.FileReader {
	if s == nil {
		return nil
	}
	return s
}

func (rt *runtime) close() {
	if err := rt.records.Close(); err != nil {
		rt.log.Warn("Failed to close document store: %v", err)
	}
}
