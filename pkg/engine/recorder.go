package engine

import (
	"net/http"

	"github.com/mockario/mockario/pkg/metrics"
	"github.com/mockario/mockario/pkg/requestlog"
)

// StatusClientClosedRequest is logged for requests that ended before any
// response was written, such as a client leaving during the delay.
const StatusClientClosedRequest = 499

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter.
func (w *statusRecorder) WriteHeader(code int) {
	if !w.written {
		w.statusCode = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// Write writes data to the underlying ResponseWriter.
func (w *statusRecorder) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// record wraps the mock surface so that every request produces exactly one
// request log entry and one metrics observation after the response is
// written. The endpoint is looked up again once the response is done, so
// requests rejected by the auth gate still carry their endpoint id.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		status := rec.statusCode
		if !rec.written {
			status = StatusClientClosedRequest
		}
		elapsed := s.now().Sub(start)
		entry := &requestlog.Entry{
			Path:         r.URL.Path,
			Method:       r.Method,
			Status:       status,
			Timestamp:    start,
			ResponseTime: elapsed.Milliseconds(),
			Query:        r.URL.RawQuery,
			RemoteAddr:   r.RemoteAddr,
		}
		label := metrics.UnmatchedPath
		if ep, ok := s.endpoints.FindByPath(r.URL.Path, r.Method); ok {
			entry.EndpointID = ep.ID
			label = ep.Path
		}

		s.requestLog.Log(entry)
		s.metrics.ObserveRequest(r.Method, label, status, elapsed)
		s.log.Debug("mock request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed)
	})
}
