package engine

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/httputil"
	"github.com/mockario/mockario/pkg/logging"
)

// MaxCredentialsBodySize caps the body read by the built-in login and
// register endpoints.
const MaxCredentialsBodySize = 1 << 20

// Handler serves the mock surface: it resolves the request against the
// registry and writes the substituted response.
type Handler struct {
	resolver *Resolver
	auth     *auth.Manager
	log      *slog.Logger
}

// NewHandler creates a Handler. authMgr may be nil, in which case the
// built-in auth endpoints only ever return their canned responses.
func NewHandler(resolver *Resolver, authMgr *auth.Manager) *Handler {
	return &Handler{resolver: resolver, auth: authMgr, log: logging.Nop()}
}

// SetLogger sets the operational logger.
func (h *Handler) SetLogger(log *slog.Logger) {
	if log != nil {
		h.log = log
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ep, body, err := h.resolver.Resolve(r.Context(), r.URL.Path, r.Method)
	switch {
	case errors.Is(err, endpoint.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, "Endpoint not found")
		return
	case err != nil:
		h.log.Debug("request abandoned during delay", "path", ep.Path, "method", ep.Method)
		return
	}

	if h.serveBuiltin(w, r, ep) {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, body)
}

// serveBuiltin answers the live auth routes. It reports false for every
// other endpoint, and for the built-ins while authentication is off.
func (h *Handler) serveBuiltin(w http.ResponseWriter, r *http.Request, ep endpoint.Endpoint) bool {
	if h.auth == nil || !h.auth.Enabled() {
		return false
	}

	switch {
	case ep.Method == endpoint.MethodPost && ep.Path == auth.PathLogin:
		creds := readCredentials(w, r)
		res, err := h.auth.Login(creds.Username, creds.Password)
		if err != nil {
			h.writeAuthError(w, err)
			return true
		}
		httputil.WriteJSON(w, http.StatusOK, res)
		return true

	case ep.Method == endpoint.MethodPost && ep.Path == auth.PathRegister:
		creds := readCredentials(w, r)
		u, err := h.auth.Register(creds.Username, creds.Password)
		if err != nil {
			h.writeAuthError(w, err)
			return true
		}
		httputil.WriteCreated(w, userResponse{User: u.Identity()})
		return true

	case ep.Method == endpoint.MethodGet && ep.Path == auth.PathMe:
		id, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			return false
		}
		httputil.WriteOK(w, userResponse{User: id})
		return true
	}
	return false
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	if _, ok := auth.ClientMessage(err); !ok {
		h.log.Error("auth route failed", "error", err)
	}
	auth.WriteError(w, err)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	User auth.Identity `json:"user"`
}

// readCredentials decodes a {username, password} body. An unreadable body
// yields empty credentials, which the auth routes reject as missing.
func readCredentials(w http.ResponseWriter, r *http.Request) credentials {
	var c credentials
	if r.Body == nil {
		return c
	}
	body := http.MaxBytesReader(w, r.Body, MaxCredentialsBodySize)
	if err := json.NewDecoder(body).Decode(&c); err != nil {
		return credentials{}
	}
	return c
}
