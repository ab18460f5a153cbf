package voxlab

import "context"

// ProgressFunc receives best-effort progress notifications: done out of
// total outer-scan steps (scanlines, or scanline-sized batches of samples).
type ProgressFunc func(done, total int)

// Tracker paces cooperative cancellation and progress reporting for one
// algorithm invocation. Algorithms call Advance once per sample of their
// outer scan; every stride samples the context is checked and the
// listener notified. Advance is never called from inside a flood fill, so
// a started component is always completed.
//
// A Tracker is scratch state owned by a single call.
type Tracker struct {
	ctx      context.Context
	progress ProgressFunc
	stride   int
	total    int
	count    int
	reported int // last step passed to progress
}

// NewTracker returns a Tracker over samples outer-scan samples, grouped
// into steps of stride samples. A nil ctx means context.Background and a
// nil progress disables reporting.
func NewTracker(ctx context.Context, progress ProgressFunc, samples, stride int) *Tracker {
	if ctx == nil {
		ctx = context.Background()
	}
	if stride < 1 {
		stride = 1
	}
	total := (samples + stride - 1) / stride

	return &Tracker{ctx: ctx, progress: progress, stride: stride, total: total}
}

// Start checks for cancellation before any work is done.
func (t *Tracker) Start() error {
	return t.ctx.Err()
}

// Advance records one processed outer-scan sample. At every step boundary
// it returns the context error, if any, and notifies the listener.
func (t *Tracker) Advance() error {
	t.count++
	if t.count%t.stride != 0 {
		return nil
	}
	if err := t.ctx.Err(); err != nil {
		return err
	}
	if t.progress != nil {
		t.reported = t.count / t.stride
		t.progress(t.reported, t.total)
	}

	return nil
}

// Finish reports completion to the listener unless the last Advance
// already did.
func (t *Tracker) Finish() {
	if t.progress != nil && t.reported != t.total {
		t.reported = t.total
		t.progress(t.total, t.total)
	}
}
