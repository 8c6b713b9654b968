// Package tracing integrates OpenTelemetry with alarmq so that queue traffic
// can be followed as producer and consumer spans. All instrumentation lives in
// this package; applications which do not enable tracing get no-op spans from
// the default global provider.
package tracing
