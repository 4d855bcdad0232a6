package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/cors"

	"github.com/mockario/mockario/pkg/admin"
	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/config"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/faker"
	"github.com/mockario/mockario/pkg/logging"
	"github.com/mockario/mockario/pkg/metrics"
	"github.com/mockario/mockario/pkg/requestlog"
	"github.com/mockario/mockario/pkg/schema"
	"github.com/mockario/mockario/pkg/store"
	"github.com/mockario/mockario/pkg/template"
)

// Server is the mockario HTTP server and the owner of its services.
type Server struct {
	cfg *config.ServerConfiguration
	log *slog.Logger // For operational logging (developer-facing)

	endpoints  *endpoint.Registry
	auth       *auth.Manager
	schemas    *schema.Store
	requestLog *requestlog.MemoryStore // For request history (user-facing)
	metrics    *metrics.Server
	templates  *template.Engine
	resolver   *Resolver
	admin      *admin.API
	handler    http.Handler

	backend   store.Backend
	persister atomic.Pointer[store.Persister]
	debounce  time.Duration
	version   string
	now       func() time.Time

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener
	running    bool
	started    atomic.Int64 // unix nanoseconds, 0 before Start
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBackend sets the snapshot backend, overriding the configured store.
func WithBackend(b store.Backend) ServerOption {
	return func(s *Server) { s.backend = b }
}

// WithFaker sets the fake value generator used for template substitution
// and record generation.
func WithFaker(f *faker.Faker) ServerOption {
	return func(s *Server) { s.templates = template.New(f) }
}

// WithVersion sets the version reported by the health route.
func WithVersion(v string) ServerOption {
	return func(s *Server) { s.version = v }
}

// WithPersistDebounce sets how long changes settle before a snapshot save.
func WithPersistDebounce(d time.Duration) ServerOption {
	return func(s *Server) { s.debounce = d }
}

// NewServer builds a server and its services from cfg. A nil cfg uses
// config.DefaultServerConfiguration.
func NewServer(cfg *config.ServerConfiguration, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultServerConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	codec, err := auth.NewTokenCodec(cfg.TokenCodec)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		log:      logging.Nop(),
		debounce: store.DefaultDebounce,
		version:  "dev",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.templates == nil {
		s.templates = template.New(nil)
	}

	maxEntries := cfg.MaxLogEntries
	if maxEntries <= 0 {
		maxEntries = requestlog.DefaultMaxEntries
	}

	s.endpoints = endpoint.NewRegistry()
	s.auth = auth.NewManager(s.endpoints, auth.NewUserStore(hasher),
		auth.WithTokenCodec(codec),
		auth.WithLogger(s.log))
	s.schemas = schema.NewStore()
	s.requestLog = requestlog.NewMemoryStore(maxEntries)
	s.metrics = metrics.NewServer(s.endpoints.Count)
	s.resolver = NewResolver(s.endpoints, s.templates)

	s.admin = admin.New(admin.Services{
		Endpoints: s.endpoints,
		Auth:      s.auth,
		Schemas:   s.schemas,
		Logs:      s.requestLog,
		Metrics:   s.metrics,
		Templates: s.templates,
	}, admin.WithLogger(s.log),
		admin.WithVersion(s.version),
		admin.WithStartTime(s.StartTime),
		admin.WithOriginPatterns(s.corsConfig().AllowOrigins))

	s.endpoints.OnChange(func(endpoint.ChangeEvent) { s.markDirty() })
	s.auth.OnChange(s.markDirty)
	s.auth.Users().OnChange(s.markDirty)
	s.schemas.OnChange(s.markDirty)

	mock := NewHandler(s.resolver, s.auth)
	mock.SetLogger(s.log)
	s.handler = s.buildHandler(s.record(s.auth.Middleware(mock)))
	return s, nil
}

func (s *Server) buildHandler(mock http.Handler) http.Handler {
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := s.admin.Match(r); ok {
			h.ServeHTTP(w, r)
			return
		}
		mock.ServeHTTP(w, r)
	})

	c := s.corsConfig()
	return cors.Handler(cors.Options{
		AllowedOrigins:   c.AllowOrigins,
		AllowedMethods:   c.AllowMethods,
		AllowedHeaders:   c.AllowHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	})(root)
}

func (s *Server) corsConfig() *config.CORSConfig {
	if s.cfg.CORS == nil {
		return config.DefaultCORSConfig()
	}
	return s.cfg.CORS
}

func (s *Server) markDirty() {
	if p := s.persister.Load(); p != nil {
		p.MarkDirty()
	}
}

func (s *Server) capture() *store.Snapshot {
	return store.Capture(s.endpoints, s.auth, s.schemas)
}

// Handler returns the complete HTTP handler: CORS, management routes and
// the mock surface.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Endpoints returns the endpoint registry.
func (s *Server) Endpoints() *endpoint.Registry {
	return s.endpoints
}

// Auth returns the auth manager.
func (s *Server) Auth() *auth.Manager {
	return s.auth
}

// Schemas returns the schema store.
func (s *Server) Schemas() *schema.Store {
	return s.schemas
}

// RequestLog returns the request log.
func (s *Server) RequestLog() *requestlog.MemoryStore {
	return s.requestLog
}

// Config returns the server configuration.
func (s *Server) Config() *config.ServerConfiguration {
	return s.cfg
}

// Restore loads the backend snapshot into the services, then applies the
// configured seed files. Start calls it; it is exported for callers that
// serve Handler themselves.
func (s *Server) Restore(ctx context.Context) error {
	if s.backend == nil {
		b, err := store.Open(ctx, s.cfg.Store, s.cfg.StoreDSN)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.backend = b
	}

	snap, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		store.Restore(snap, s.endpoints, s.auth, s.schemas)
		s.log.Info("restored snapshot",
			"store", s.cfg.Store,
			"endpoints", len(snap.Endpoints),
			"users", len(snap.Users),
			"schemas", len(snap.Schemas))
	}

	if len(s.cfg.Load) == 0 {
		return nil
	}
	seeds, err := config.LoadGlob(s.cfg.Load...)
	if err != nil {
		return err
	}
	for _, seed := range seeds {
		res, err := config.Apply(seed, s.endpoints, s.auth)
		if err != nil {
			return err
		}
		s.log.Info("loaded seed file",
			"file", seed.Source,
			"endpoints", res.Endpoints,
			"users", res.Users,
			"skipped", len(res.Skipped))
		for _, skipped := range res.Skipped {
			s.log.Warn("seed entry already exists, skipped", "file", seed.Source, "entry", skipped)
		}
	}
	return nil
}

// Start restores state, starts the persister and begins serving.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	ctx := context.Background()
	if err := s.Restore(ctx); err != nil {
		return err
	}
	p := store.NewPersister(s.backend, s.capture,
		store.WithDebounce(s.debounce),
		store.WithLogger(s.log))
	s.persister.Store(p)
	if len(s.cfg.Load) > 0 {
		p.MarkDirty()
	}

	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		s.persister.Store(nil)
		_ = p.Close()
		return fmt.Errorf("listen on %s: %w", s.cfg.Address(), err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeoutDuration(),
		WriteTimeout: s.cfg.WriteTimeoutDuration(),
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	s.started.Store(s.now().UnixNano())
	s.log.Info("server started", "addr", ln.Addr().String(), "store", s.cfg.Store)
	return nil
}

// Stop gracefully shuts down the server, flushes pending state and closes
// the store backend.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	if p := s.persister.Swap(nil); p != nil {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("persister close: %w", err))
		}
	}
	if err := s.backend.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store close: %w", err))
	}

	s.running = false
	s.log.Info("server stopped")
	return errors.Join(errs...)
}

// Addr returns the address the server listens on, or "" before Start.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// StartTime returns when the server started, or the zero time before Start.
func (s *Server) StartTime() time.Time {
	n := s.started.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
