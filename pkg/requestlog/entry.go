package requestlog

import "time"

// Entry is one completed request on the mock surface.
type Entry struct {
	ID string `json:"id"`

	// EndpointID is the matched endpoint, empty when nothing matched.
	EndpointID string `json:"endpointId"`

	Path   string `json:"path"`
	Method string `json:"method"`
	Status int    `json:"status"`

	Timestamp time.Time `json:"timestamp"`

	// ResponseTime is the elapsed time in milliseconds, delay included.
	ResponseTime int64 `json:"responseTime"`

	Query      string `json:"query,omitempty"`
	RemoteAddr string `json:"remoteAddr,omitempty"`
}
