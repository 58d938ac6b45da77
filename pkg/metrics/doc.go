// Package metrics defines the Prometheus counters and histograms of the
// signup service. A nil *Metrics is valid and records nothing.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	r.Handle("/metrics", metrics.Handler(reg))
package metrics
