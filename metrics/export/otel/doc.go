// Package otel exports goFed metrics as OpenTelemetry observable
// instruments registered on a caller-supplied meter.
package otel
