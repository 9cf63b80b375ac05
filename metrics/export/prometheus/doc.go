// Package prometheus renders goFed metrics in Prometheus text exposition
// format. Counter names are prefixed gofed_*_total; the single histogram is
// gofed_validate_latency_seconds.
package prometheus
