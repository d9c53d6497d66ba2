package router

import (
	"context"
	"time"

	"github.com/google/uuid"

	"eventsort/internal/logging"
	"eventsort/internal/services"
)

// progressLogStep is the completion percentage between progress records.
const progressLogStep = 10

// Batch is a running or finished routing pass over one source directory.
type Batch struct {
	id       string
	progress *Progress
	done     chan struct{}
	report   Report
}

// ID returns the batch correlation identifier.
func (b *Batch) ID() string {
	return b.id
}

// Progress returns the live counters. Safe to poll from any goroutine.
func (b *Batch) Progress() ProgressSnapshot {
	return b.progress.Snapshot()
}

// Done is closed once the report is final.
func (b *Batch) Done() <-chan struct{} {
	return b.done
}

// Wait blocks until the batch finishes and returns its report.
func (b *Batch) Wait() Report {
	<-b.done
	return b.report
}

// Start enumerates src and routes every file into target on a background
// goroutine. An unusable source is returned as ErrSourceUnavailable and no
// batch is started.
func (r *Router) Start(ctx context.Context, src, target string) (*Batch, error) {
	files, err := r.Enumerate(src, target)
	if err != nil {
		logging.ErrorWithContext(logging.WithContext(ctx, r.logger), "batch not started", "batch_rejected",
			logging.Error(err),
			logging.String(logging.FieldErrorKind, services.Kind(err)),
			logging.String(logging.FieldErrorHint, "check the source path and the accepted extensions"),
		)
		return nil, err
	}

	batch := &Batch{
		id:       uuid.NewString(),
		progress: &Progress{},
		done:     make(chan struct{}),
	}
	batch.progress.start(len(files))
	batch.report = Report{
		ID:        batch.id,
		Source:    src,
		Target:    target,
		StartedAt: time.Now(),
		Counts:    make(map[Outcome]int),
		DryRun:    r.opts.DryRun,
	}

	ctx = services.WithStage(services.WithBatchID(ctx, batch.id), "routing")
	go r.runBatch(ctx, batch, files, target)
	return batch, nil
}

// Run is the synchronous form of Start.
func (r *Router) Run(ctx context.Context, src, target string) (Report, error) {
	batch, err := r.Start(ctx, src, target)
	if err != nil {
		return Report{}, err
	}
	return batch.Wait(), nil
}

func (r *Router) runBatch(ctx context.Context, batch *Batch, files []string, target string) {
	logger := logging.WithContext(ctx, r.logger)
	sampler := logging.NewProgressSampler(progressLogStep)
	defer close(batch.done)
	defer batch.progress.finish()

	logger.Info("batch started",
		logging.Int("files", len(files)),
		logging.String("source", batch.report.Source),
		logging.String("target", target),
	)
	for _, path := range files {
		if ctx.Err() != nil {
			batch.report.Canceled = true
			logging.WarnWithContext(logger, "batch canceled", "batch_canceled",
				logging.Int("processed", len(batch.report.Results)),
				logging.Int("remaining", len(files)-len(batch.report.Results)),
				logging.String(logging.FieldImpact, "remaining files stay in the source directory"),
				logging.String(logging.FieldErrorHint, "run sort again to process the rest"),
			)
			break
		}
		batch.report.add(r.Route(ctx, path, target))
		done := batch.progress.advance()
		if sampler.ShouldLog(done, len(files)) {
			logger.Info("batch progress",
				logging.Int("current", done),
				logging.Int("total", len(files)),
				logging.Float64("percent", batch.progress.Snapshot().Percent()),
			)
		}
	}
	batch.report.FinishedAt = time.Now()

	attrs := []logging.Attr{
		logging.Bool("canceled", batch.report.Canceled),
		logging.Duration("elapsed", batch.report.FinishedAt.Sub(batch.report.StartedAt)),
	}
	for _, outcome := range Outcomes() {
		if n := batch.report.Counts[outcome]; n > 0 {
			attrs = append(attrs, logging.Int(string(outcome), n))
		}
	}
	logger.Info("batch finished", logging.Args(attrs...)...)
}
