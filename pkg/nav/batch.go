package nav

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rlaidlaw/pwdbview/pkg/logging"
	"github.com/rlaidlaw/pwdbview/pkg/metrics"
	"github.com/rlaidlaw/pwdbview/pkg/parallel"
	"github.com/rlaidlaw/pwdbview/pkg/render"
	"github.com/rlaidlaw/pwdbview/pkg/selection"
)

// BatchResult summarizes an unattended export run.
type BatchResult struct {
	Exported int
	Failed   int
}

// BatchRunner exports every selection item exactly once, in selection order
// when sequential. With Workers > 1 exports fan out over a worker pool; each
// task owns its item index and the shared counter is used only for progress.
type BatchRunner struct {
	renderer render.Renderer
	outDir   string
	workers  int
	logger   logging.Logger
	registry *metrics.Registry
}

// NewBatchRunner creates a batch runner. registry may be nil.
func NewBatchRunner(renderer render.Renderer, outDir string, workers int, logger logging.Logger, registry *metrics.Registry) *BatchRunner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &BatchRunner{
		renderer: renderer,
		outDir:   outDir,
		workers:  workers,
		logger:   logger,
		registry: registry,
	}
}

// Run exports the whole selection. One failed export does not abort the run;
// the result counts failures so the caller can exit non-zero. Cancelling the
// context stops submitting new items; already-written files remain valid.
func (r *BatchRunner) Run(ctx context.Context, items []selection.Item) (BatchResult, error) {
	if len(items) == 0 {
		return BatchResult{}, selection.ErrNoSelection
	}

	timer := logging.StartTimer(r.logger, "batch export finished", logging.Count(len(items)))

	var exported, failed, progress atomic.Int64
	exportOne := func(item selection.Item) {
		start := time.Now()
		err := r.renderer.Export(item, render.ExportPath(r.outDir, item))
		elapsed := time.Since(start)

		done := progress.Add(1)
		if err != nil {
			failed.Add(1)
			r.recordExport("failure", elapsed)
			r.logger.Error("export failed",
				logging.SignalName(item.Key.Name()),
				logging.Subject(item.Subject),
				logging.Dataset(item.Root),
				logging.Error(err))
			return
		}
		exported.Add(1)
		r.recordExport("success", elapsed)
		r.logger.Debug("exported figure",
			logging.SignalName(item.Key.Name()),
			logging.Subject(item.Subject),
			logging.Int("progress", int(done)),
			logging.Count(len(items)))
	}

	if r.workers > 1 {
		pool := parallel.NewWorkerPool(r.workers, r.logger)
		for _, item := range items {
			if ctx.Err() != nil {
				break
			}
			pool.Submit(func() { exportOne(item) })
		}
		pool.Wait()
	} else {
		for _, item := range items {
			if ctx.Err() != nil {
				break
			}
			exportOne(item)
		}
	}

	timer.End()
	return BatchResult{
		Exported: int(exported.Load()),
		Failed:   int(failed.Load()),
	}, ctx.Err()
}

func (r *BatchRunner) recordExport(status string, elapsed time.Duration) {
	if r.registry != nil {
		r.registry.RecordExport(status, elapsed)
	}
}
