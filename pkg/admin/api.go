package admin

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/httputil"
	"github.com/mockario/mockario/pkg/logging"
	"github.com/mockario/mockario/pkg/metrics"
	"github.com/mockario/mockario/pkg/requestlog"
	"github.com/mockario/mockario/pkg/schema"
	"github.com/mockario/mockario/pkg/template"
)

// Services are the components the management API operates on.
type Services struct {
	Endpoints *endpoint.Registry
	Auth      *auth.Manager
	Schemas   *schema.Store
	Logs      requestlog.SubscribableStore
	Metrics   *metrics.Server
	Templates *template.Engine
}

// API is the management HTTP API.
type API struct {
	svc       Services
	generator *schema.Generator
	mux       *http.ServeMux
	log       *slog.Logger
	version   string
	startTime func() time.Time

	// originPatterns are the browser origins allowed to open the log stream.
	originPatterns []string
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(a *API) {
		if log != nil {
			a.log = log
		}
	}
}

// WithVersion sets the version reported by /api/health.
func WithVersion(v string) Option {
	return func(a *API) { a.version = v }
}

// WithStartTime sets the source of the server start time used for uptime.
func WithStartTime(fn func() time.Time) Option {
	return func(a *API) { a.startTime = fn }
}

// WithOriginPatterns allows browsers on the given CORS origins to open the
// log stream. Without it only same-origin pages may connect.
func WithOriginPatterns(origins []string) Option {
	return func(a *API) { a.originPatterns = originPatterns(origins) }
}

// originPatterns turns CORS origins such as "http://localhost:5173" into the
// host patterns websocket.Accept matches against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		switch {
		case o == "":
			continue
		case o == "*":
			patterns = append(patterns, "*")
		default:
			if u, err := url.Parse(o); err == nil && u.Host != "" {
				patterns = append(patterns, u.Host)
			} else {
				patterns = append(patterns, o)
			}
		}
	}
	return patterns
}

// New creates the management API. Templates defaults to a fresh engine.
func New(svc Services, opts ...Option) *API {
	if svc.Templates == nil {
		svc.Templates = template.New(nil)
	}
	a := &API{
		svc:       svc,
		generator: schema.NewGenerator(svc.Templates),
		mux:       http.NewServeMux(),
		log:       logging.Nop(),
		version:   "dev",
	}
	for _, opt := range opts {
		opt(a)
	}
	a.registerRoutes(a.mux)
	return a
}

// registerRoutes sets up all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", a.handleHealth)
	if a.svc.Metrics != nil {
		mux.Handle("GET /api/metrics", a.svc.Metrics.Handler())
	}
	mux.HandleFunc("GET /api/openapi.json", a.handleGetOpenAPISpec)

	mux.HandleFunc("GET /api/endpoints", a.handleListEndpoints)
	mux.HandleFunc("POST /api/endpoints", a.handleCreateEndpoint)
	mux.HandleFunc("GET /api/endpoints/{id}", a.handleGetEndpoint)
	mux.HandleFunc("PUT /api/endpoints/{id}", a.handleUpdateEndpoint)
	mux.HandleFunc("DELETE /api/endpoints/{id}", a.handleDeleteEndpoint)

	mux.HandleFunc("GET /api/auth/settings", a.handleGetAuthSettings)
	mux.HandleFunc("PUT /api/auth/settings", a.handleUpdateAuthSettings)
	mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	mux.HandleFunc("GET /api/auth/users", a.handleListUsers)
	mux.HandleFunc("POST /api/auth/users", a.handleCreateUser)
	mux.HandleFunc("DELETE /api/auth/users/{id}", a.handleDeleteUser)
	mux.HandleFunc("GET /api/auth/endpoints", a.handleListAuthEndpoints)
	mux.HandleFunc("GET /api/auth/me", a.handleMe)

	mux.HandleFunc("GET /api/logs", a.handleListLogs)
	mux.HandleFunc("DELETE /api/logs", a.handleClearLogs)
	mux.HandleFunc("GET /api/logs/count", a.handleCountLogs)
	mux.HandleFunc("GET /api/logs/stream", a.handleStreamLogs)
	mux.HandleFunc("GET /api/logs/{id}", a.handleGetLog)

	mux.HandleFunc("GET /api/faker/methods", a.handleListFakerMethods)
	mux.HandleFunc("POST /api/faker/preview", a.handleFakerPreview)
	mux.HandleFunc("POST /api/generate", a.handleGenerate)

	mux.HandleFunc("GET /api/schemas", a.handleListSchemas)
	mux.HandleFunc("POST /api/schemas", a.handleCreateSchema)
	mux.HandleFunc("GET /api/schemas/{id}", a.handleGetSchema)
	mux.HandleFunc("PUT /api/schemas/{id}", a.handleUpdateSchema)
	mux.HandleFunc("DELETE /api/schemas/{id}", a.handleDeleteSchema)
	mux.HandleFunc("POST /api/schemas/{id}/tables/{tableId}/generate", a.handleGenerateTableRecords)
}

// Match returns the handler for r if a management route claims it. Requests
// no route claims, including method mismatches, are left to the caller so
// that mock endpoints can share the /api prefix.
//
// The returned handler is the mux itself: only ServeMux.ServeHTTP fills in
// the {id} wildcards read by r.PathValue.
func (a *API) Match(r *http.Request) (http.Handler, bool) {
	if _, pattern := a.mux.Handler(r); pattern == "" {
		return nil, false
	}
	return a.mux, true
}

// ServeHTTP serves the management routes and answers 404 for anything else.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := a.Match(r); ok {
		h.ServeHTTP(w, r)
		return
	}
	httputil.WriteError(w, http.StatusNotFound, ErrMsgNotFound)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime"`
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	var uptime int64
	if a.startTime != nil {
		if started := a.startTime(); !started.IsZero() {
			uptime = int64(time.Since(started).Seconds())
		}
	}
	httputil.WriteOK(w, healthResponse{Status: "ok", Version: a.version, Uptime: uptime})
}
