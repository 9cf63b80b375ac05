// Package internaldefs holds the metric name tables shared by the
// prometheus and otel exporters so the two surfaces can never drift apart.
package internaldefs
