// Package telemetry carries the ambient logging and tracing concerns of the
// CLI front-end: a small leveled-logger interface with a mutex-guarded
// default implementation, and an OpenTelemetry tracer wired without a
// network exporter. Nothing in ddo/, frontier/, barrier/, compiler/,
// solver/ or tsptw/ imports this package — diagnostics are strictly a
// cmd/ddosolve concern, threaded in from the outside as a nil-safe
// optional collaborator.
//
// Grounded on junjiewwang-perf-analysis/pkg/utils/logger.go for the
// Logger interface and DefaultLogger, and on that repo's
// go.opentelemetry.io/otel stack for tracing.
package telemetry
