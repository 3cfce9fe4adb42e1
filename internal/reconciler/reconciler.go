// Package reconciler periodically sweeps document records against the
// physical stores. It reports records whose file is absent from both
// stores (orphans) and, when configured, deletes them; it also counts
// legacy-resident files still awaiting migration.
package reconciler

import (
	"context"
	"sync"
	"time"

	"github.com/sipi-it/slms/pkg/db/models"
	"github.com/sipi-it/slms/pkg/db/store"
	"github.com/sipi-it/slms/pkg/log"
	"github.com/sipi-it/slms/pkg/storage"
	"github.com/sipi-it/slms/pkg/storage/resolver"
)

// Result summarizes one reconciliation sweep.
type Result struct {
	Scanned        int
	Structured     int
	Legacy         int
	Orphans        int
	OrphansDeleted int
	Errors         int
	Duration       time.Duration
}

// Options control a reconciler instance.
type Options struct {
	Interval time.Duration
	// DeleteOrphanRecords removes orphaned records instead of only
	// reporting them.
	DeleteOrphanRecords bool
	BatchSize           int
}

// Reconciler runs the sweep, either once or on a ticker.
type Reconciler struct {
	records  store.DocumentStore
	resolver *resolver.Resolver
	opts     Options
	log      log.LoggerService

	mu      sync.Mutex // guards against overlapping sweeps
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func New(records store.DocumentStore, res *resolver.Resolver, opts Options, logger log.LoggerService) *Reconciler {
	if opts.Interval <= 0 {
		opts.Interval = 6 * time.Hour
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	return &Reconciler{
		records:  records,
		resolver: res,
		opts:     opts,
		log:      logger.Named("reconciler"),
	}
}

// RunOnce performs a single sweep over all document records.
func (r *Reconciler) RunOnce(ctx context.Context) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	result := &Result{}

	err := r.records.ForEachDocument(ctx, r.opts.BatchSize, func(doc *models.Document) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result.Scanned++

		info, err := r.resolver.Resolve(doc.FilePath)
		if err != nil {
			// Invalid stored paths are data corruption, not orphans
			r.log.Warn("Record %s has unresolvable path %s: %v", doc.ID, doc.FilePath, err)
			result.Errors++
			return nil
		}

		switch {
		case info.Exists && info.Source == storage.SourceStructured:
			result.Structured++
		case info.Exists && info.Source == storage.SourceLegacy:
			result.Legacy++
		default:
			result.Orphans++
			r.log.Warn("Orphaned record %s: %s absent from both stores", doc.ID, doc.FilePath)
			if r.opts.DeleteOrphanRecords {
				if err := r.records.DeleteDocument(ctx, doc.ID); err != nil {
					r.log.Error("Failed to delete orphaned record %s: %v", doc.ID, err)
					result.Errors++
					return nil
				}
				result.OrphansDeleted++
			}
		}
		return nil
	})

	result.Duration = time.Since(start)
	if err != nil {
		return result, err
	}

	r.log.Info("Reconcile finished: scanned=%d structured=%d legacy=%d orphans=%d deleted=%d errors=%d in %s",
		result.Scanned, result.Structured, result.Legacy,
		result.Orphans, result.OrphansDeleted, result.Errors, result.Duration)
	return result, nil
}

// Start launches the periodic sweep goroutine. A second Start is a
// no-op until Stop is called.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.running = true
	r.cancel = cancel
	r.done = make(chan struct{})
	r.mu.Unlock()

	go func() {
		defer close(r.done)

		ticker := time.NewTicker(r.opts.Interval)
		defer ticker.Stop()

		r.log.Info("Reconciler started with interval %s", r.opts.Interval)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
					r.log.Error("Reconcile sweep failed: %v", err)
				}
			}
		}
	}()
}

// Stop cancels the periodic sweep and waits for it to drain.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	cancel()
	<-done
}
