package auth

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/logging"
)

// Manager owns the authentication settings and coordinates them with the
// endpoint registry and the user store.
type Manager struct {
	mu        sync.RWMutex
	settings  Settings
	listeners []func()

	endpoints *endpoint.Registry
	users     *UserStore
	codec     TokenCodec
	log       *slog.Logger
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTokenCodec sets the codec used to mint and decode bearer tokens.
func WithTokenCodec(c TokenCodec) Option {
	return func(m *Manager) { m.codec = c }
}

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock sets the time source for token expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSettings sets the initial settings without running any transition.
func WithSettings(s Settings) Option {
	return func(m *Manager) { m.settings = s }
}

// NewManager creates a Manager over the given registry and user store,
// starting from DefaultSettings.
func NewManager(endpoints *endpoint.Registry, users *UserStore, opts ...Option) *Manager {
	m := &Manager{
		settings:  DefaultSettings(),
		endpoints: endpoints,
		users:     users,
		codec:     HMACCodec{},
		log:       logging.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Users returns the user store.
func (m *Manager) Users() *UserStore {
	return m.users
}

// Codec returns the token codec.
func (m *Manager) Codec() TokenCodec {
	return m.codec
}

// OnChange registers fn to run after every settings update.
func (m *Manager) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Enabled reports whether the gate is active.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Enabled
}

// UpdateSettings merges p into the settings. Turning authentication on
// provisions the built-in endpoints that are missing; turning it off removes
// them and deletes all users. The transition finishes before the merged
// settings are returned.
func (m *Manager) UpdateSettings(p SettingsPatch) (Settings, error) {
	if p.Type != nil && !ValidType(*p.Type) {
		return Settings{}, ErrInvalidType
	}

	m.mu.Lock()
	wasEnabled := m.settings.Enabled
	p.apply(&m.settings)
	nowEnabled := m.settings.Enabled

	switch {
	case !wasEnabled && nowEnabled:
		created := m.provisionLocked()
		m.log.Info("authentication enabled",
			"type", m.settings.Type,
			"provisioned_endpoints", created)
	case wasEnabled && !nowEnabled:
		removed := m.endpoints.DeleteWhere(isBuiltin)
		cleared := m.users.Clear()
		m.log.Info("authentication disabled",
			"removed_endpoints", len(removed),
			"cleared_users", cleared)
	}

	out := m.settings
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return out, nil
}

func (m *Manager) provisionLocked() int {
	created := 0
	for _, in := range BuiltinEndpoints() {
		if _, ok := m.endpoints.CreateIfAbsent(in); ok {
			created++
		}
	}
	return created
}

// Restore replaces the settings with previously saved ones without running
// any transition.
func (m *Manager) Restore(s Settings) {
	if !ValidType(s.Type) {
		s.Type = TypeJWT
	}
	m.mu.Lock()
	m.settings = s
	m.mu.Unlock()
}

// AuthEndpoints returns the built-in auth endpoints currently registered.
func (m *Manager) AuthEndpoints() []endpoint.Endpoint {
	var out []endpoint.Endpoint
	for _, ep := range m.endpoints.FindAll() {
		if isBuiltin(ep) {
			out = append(out, ep)
		}
	}
	return out
}

// LoginResult is the body returned by a successful login.
type LoginResult struct {
	Token   string   `json:"token,omitempty"`
	User    Identity `json:"user"`
	Message string   `json:"message,omitempty"`
}

// Login checks credentials and, for jwt and bearer settings, mints a token
// carrying sub, username and exp.
func (m *Manager) Login(username, password string) (LoginResult, error) {
	if username == "" || password == "" {
		return LoginResult{}, ErrMissingCredentials
	}
	s := m.Settings()
	if !s.Enabled {
		return LoginResult{}, ErrAuthDisabled
	}

	u, ok := m.users.Validate(username, password)
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	if s.Type != TypeJWT && s.Type != TypeBearer {
		return LoginResult{User: u.Identity(), Message: "Login successful"}, nil
	}
	if s.JWTSecret == "" {
		return LoginResult{}, ErrSecretNotConfigured
	}
	token, err := m.codec.Mint(Claims{
		Subject:   u.ID,
		Username:  u.Username,
		ExpiresAt: m.now().Add(s.Expiry()),
	}, s.JWTSecret)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: u.Identity()}, nil
}

// Register creates a user through the public registration path, which is
// open only when authentication is enabled and registration is allowed.
func (m *Manager) Register(username, password string) (User, error) {
	if !m.Settings().RegisterAllowed() {
		return User{}, ErrRegistrationDisabled
	}
	return m.users.Create(username, password)
}
