// Package metrics exposes mock traffic in the Prometheus text exposition
// format (text/plain; version=0.0.4) using only the standard library.
//
// Supported metric types:
//   - Counter: monotonically increasing value
//   - Gauge: value that can go up or down, or be read on scrape via GaugeFunc
//   - Histogram: distribution of values over fixed buckets
//
// Server bundles the metrics mockario publishes:
//
//   - mockario_requests_total{method,path,status}
//   - mockario_request_duration_seconds{method}
//   - mockario_endpoints
//
// Usage:
//
//	m := metrics.NewServer(registry.Count)
//	m.ObserveRequest("GET", "/api/users", 200, 12*time.Millisecond)
//	mux.Handle("GET /api/metrics", m.Handler())
package metrics
