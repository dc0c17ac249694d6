// Package prometheus renders trustkit metrics in Prometheus text exposition
// format.
//
// [NewPrometheusExporter] accepts a [trustkit.Engine] and exposes an
// [http.Handler] that renders all trustkit counters and histograms. Counter
// names are prefixed trustkit_*_total; the single histogram is
// trustkit_confirm_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
