package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"

	config "github.com/sipi-it/slms/internal/config/server"
	"github.com/sipi-it/slms/internal/reconciler"
	"github.com/sipi-it/slms/pkg/db/store"
	"github.com/sipi-it/slms/pkg/log"
	"github.com/sipi-it/slms/pkg/storage/legacy"
	"github.com/sipi-it/slms/pkg/storage/resolver"
	"github.com/sipi-it/slms/pkg/storage/structured"
)

// ReconcilerAgent is the long-running maintenance process: it keeps a
// periodic orphan sweep going against the shared storage roots and the
// record store until interrupted.
type ReconcilerAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg *config.BaseServerConfig
	sc  *container.ServiceContainer
	log log.LoggerService

	records store.DocumentStore
	sweeper *reconciler.Reconciler
}

func NewAgent(cfg *config.BaseServerConfig) *ReconcilerAgent {
	return &ReconcilerAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("slms", cfg.Log),
	}
}

func (ra *ReconcilerAgent) setupServices(ctx context.Context) error {
	errs := container.Errors{}

	ra.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](ra.sc,
		container.With[log.LoggerService](),
		container.WithInstance(ra.log)))

	records, err := store.NewFromConfig(ra.cfg.Metadata)
	if err != nil {
		return err
	}
	if err := records.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect document store: %w", err)
	}
	ra.records = records

	files, err := structured.New(ra.cfg.Storage.Root)
	if err != nil {
		return err
	}

	var res *resolver.Resolver
	if ra.cfg.Storage.LegacyRoot != "" {
		res = resolver.New(files, legacy.New(ra.cfg.Storage.LegacyRoot, ra.log))
	} else {
		res = resolver.New(files, nil)
	}

	interval, err := time.ParseDuration(ra.cfg.Reconciler.Interval)
	if err != nil {
		return fmt.Errorf("invalid reconciler interval %q: %w", ra.cfg.Reconciler.Interval, err)
	}

	ra.sweeper = reconciler.New(records, res, reconciler.Options{
		Interval:            interval,
		DeleteOrphanRecords: ra.cfg.Reconciler.DeleteOrphanRecords,
		BatchSize:           ra.cfg.Reconciler.BatchSize,
	}, ra.log)

	return errs.Errors()
}

// Serve runs the agent until the context is cancelled or an interrupt
// arrives, then shuts down within the configured timeout.
func (ra *ReconcilerAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	ra.mutex.Lock()

	if err := ra.setupServices(ctx); err != nil {
		ra.mutex.Unlock()
		return err
	}

	ra.sweeper.Start(ctx)
	ra.mutex.Unlock()

	<-ctx.Done()

	timeout, err := time.ParseDuration(ra.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ra.sweeper.Stop()

	if err := ra.records.Close(); err != nil {
		ra.log.Warn("Failed to close document store: %v", err)
	}

	if err := ra.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	ra.wait.Wait()
	return nil
}
