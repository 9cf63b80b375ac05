package internaldefs

import (
	goFed "github.com/MrEthical07/goFed"
)

// CounterDef binds a [goFed.MetricID] to its exported name and help text.
type CounterDef struct {
	ID   goFed.MetricID
	Name string
	Help string
}

// HistogramDef binds a histogram [goFed.MetricID] to its exported name.
type HistogramDef struct {
	ID   goFed.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order shared by all
// exporters.
var CounterDefs = []CounterDef{
	{ID: goFed.MetricLoginSuccess, Name: "gofed_login_success_total", Help: "Successful provider logins."},
	{ID: goFed.MetricLoginFailure, Name: "gofed_login_failure_total", Help: "Failed provider logins."},
	{ID: goFed.MetricRegisterSuccess, Name: "gofed_register_success_total", Help: "Created accounts, explicit and first-login."},
	{ID: goFed.MetricSilentLoginSuccess, Name: "gofed_silent_login_success_total", Help: "Successful silent logins."},
	{ID: goFed.MetricSilentLoginFailure, Name: "gofed_silent_login_failure_total", Help: "Rejected silent logins."},
	{ID: goFed.MetricRefreshSuccess, Name: "gofed_refresh_success_total", Help: "Successful refresh exchanges."},
	{ID: goFed.MetricRefreshFailure, Name: "gofed_refresh_failure_total", Help: "Rejected refresh exchanges."},
	{ID: goFed.MetricLogout, Name: "gofed_logout_total", Help: "Logout operations."},
	{ID: goFed.MetricIdentityRejected, Name: "gofed_identity_rejected_total", Help: "Provider assertions rejected by verification."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: goFed.MetricValidateLatency, Name: "gofed_validate_latency_seconds", Help: "Validate latency histogram."},
}

// HistogramBounds are the upper bucket bounds in seconds, Prometheus style.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds as instrument-name suffixes.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
