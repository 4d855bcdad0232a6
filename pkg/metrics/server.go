package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// Metric names published by the mock server.
const (
	RequestsTotalName   = "mockario_requests_total"
	RequestDurationName = "mockario_request_duration_seconds"
	EndpointsName       = "mockario_endpoints"
)

// UnmatchedPath is the path label of requests that matched no endpoint.
// Raw paths of unmatched requests are not used as labels to bound cardinality.
const UnmatchedPath = "unmatched"

// Server bundles the metrics of the mock surface.
type Server struct {
	Registry        *Registry
	RequestsTotal   *Counter
	RequestDuration *Histogram
	Endpoints       *GaugeFunc
}

// NewServer registers the mock surface metrics in a fresh registry.
// endpointCount is read on every scrape.
func NewServer(endpointCount func() int) *Server {
	reg := NewRegistry()
	return &Server{
		Registry: reg,
		RequestsTotal: reg.NewCounter(RequestsTotalName,
			"Total number of requests served on the mock surface.",
			"method", "path", "status"),
		RequestDuration: reg.NewHistogram(RequestDurationName,
			"Mock request duration in seconds, configured delay included.",
			DefaultBuckets, "method"),
		Endpoints: reg.NewGaugeFunc(EndpointsName,
			"Number of endpoints in the registry.",
			func() float64 { return float64(endpointCount()) }),
	}
}

// ObserveRequest records one completed mock request. path should be the
// matched endpoint path, or UnmatchedPath.
func (s *Server) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	_ = s.RequestsTotal.Inc(method, path, strconv.Itoa(status))
	_ = s.RequestDuration.Observe(elapsed.Seconds(), method)
}

// Handler serves the exposition.
func (s *Server) Handler() http.Handler {
	return s.Registry.Handler()
}
