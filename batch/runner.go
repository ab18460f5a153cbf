package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	otelattr "go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/raster"
)

// ErrIncompleteTask is returned for a task without input or operation.
var ErrIncompleteTask = fmt.Errorf("batch: %w: task has no input or operation", voxlab.ErrConfiguration)

// tracerName identifies spans emitted by this package.
const tracerName = "github.com/katalvlaran/voxlab/batch"

// Result is the output of one task.
type Result struct {
	Name     string
	Op       string
	Output   *raster.Raster
	Duration time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of concurrent tasks. n < 1 means
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Runner executes batches of independent tasks.
type Runner struct {
	workers int
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewRunner returns a Runner with GOMAXPROCS workers unless configured
// otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Workers returns the concurrency limit.
func (r *Runner) Workers() int { return r.workers }

// Run executes tasks with at most Workers running at once. The first
// failing task cancels the others; its error is returned and no results
// are. On success results[i] belongs to tasks[i].
func (r *Runner) Run(ctx context.Context, tasks []Task) ([]Result, error) {
	for i, t := range tasks {
		if t.Run == nil || t.Input == nil {
			return nil, fmt.Errorf("%w: task %d (%s)", ErrIncompleteTask, i, t.Name)
		}
	}

	results := make([]Result, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	start := time.Now()
	for i, t := range tasks {
		g.Go(func() error {
			res, err := r.runTask(gctx, t)
			if err != nil {
				return fmt.Errorf("batch: task %q: %w", t.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		r.logger.Error("batch failed", "tasks", len(tasks), "error", err)
		return nil, err
	}
	r.logger.Info("batch done", "tasks", len(tasks), "workers", r.workers, "elapsed", time.Since(start))

	return results, nil
}

func (r *Runner) runTask(ctx context.Context, t Task) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "batch."+t.Op,
		trace.WithAttributes(
			otelattr.String("task", t.Name),
			otelattr.String("input", t.Input.String()),
		))
	defer span.End()

	// Tasks queued behind a failure never start.
	if err := ctx.Err(); err != nil {
		tasksTotal.WithLabelValues(t.Op, resultCanceled).Inc()
		span.SetStatus(codes.Error, "canceled")
		return Result{}, err
	}

	start := time.Now()
	out, err := t.Run(ctx, t.Input)
	elapsed := time.Since(start)
	taskDuration.WithLabelValues(t.Op).Observe(elapsed.Seconds())

	if err != nil {
		result := resultError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			result = resultCanceled
		}
		tasksTotal.WithLabelValues(t.Op, result).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
		r.logger.Warn("task failed", "task", t.Name, "op", t.Op, "result", result, "error", err)
		return Result{}, err
	}

	tasksTotal.WithLabelValues(t.Op, resultOK).Inc()
	samplesTotal.WithLabelValues(t.Op).Add(float64(t.Input.Len()))
	span.SetAttributes(otelattr.Int64("duration_us", elapsed.Microseconds()))
	r.logger.Debug("task done", "task", t.Name, "op", t.Op, "elapsed", elapsed)

	return Result{Name: t.Name, Op: t.Op, Output: out, Duration: elapsed}, nil
}
