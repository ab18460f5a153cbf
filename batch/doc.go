// Package batch runs independent raster operations concurrently.
//
// Every core operation is single-threaded and owns its scratch buffers,
// so separate rasters can be processed in parallel without locks. A
// Runner bounds the number of concurrent tasks, cancels the remaining
// ones after the first failure and returns results in task order.
//
// Each task is traced with an OpenTelemetry span, counted and timed by
// Prometheus collectors registered on the default registry, and logged
// through slog.
package batch
