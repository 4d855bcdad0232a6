package auth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/mockario/mockario/pkg/httputil"
)

// BasicChallenge is sent with 401 responses under basic authentication.
const BasicChallenge = `Basic realm="Protected"`

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by the gate, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Authenticate checks the request credentials against the active settings.
// The returned identity is nil for apiKey authentication, which carries none,
// and for unrecognized types, which let every request through.
func (m *Manager) Authenticate(r *http.Request) (*Identity, error) {
	s := m.Settings()
	header := r.Header.Get("Authorization")

	switch s.Type {
	case TypeBasic:
		return m.authenticateBasic(header)

	case TypeAPIKey:
		if s.APIKey == "" {
			return nil, ErrInvalidAPIKey
		}
		want := "Bearer " + s.APIKey
		if subtle.ConstantTimeCompare([]byte(header), []byte(want)) != 1 {
			return nil, ErrInvalidAPIKey
		}
		return nil, nil

	case TypeBearer, TypeJWT:
		token := strings.Replace(header, "Bearer ", "", 1)
		if token == "" {
			return nil, ErrTokenRequired
		}
		if s.JWTSecret == "" {
			return nil, ErrSecretNotConfigured
		}
		claims, err := m.codec.Decode(token, s.JWTSecret)
		if err != nil {
			if errors.Is(err, ErrInvalidToken) {
				return nil, err
			}
			return nil, errors.Join(ErrInvalidToken, err)
		}
		return &Identity{ID: claims.Subject, Username: claims.Username}, nil
	}
	return nil, nil
}

func (m *Manager) authenticateBasic(header string) (*Identity, error) {
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return nil, ErrAuthRequired
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrAuthRequired
	}
	username, password, _ := strings.Cut(string(raw), ":")
	u, ok := m.users.Validate(username, password)
	if !ok {
		return nil, ErrAuthRequired
	}
	id := u.Identity()
	return &id, nil
}

// Middleware returns the gate. When authentication is enabled and the
// request matches an endpoint marked authRequired, the request must carry
// valid credentials; the resolved identity is attached to the context.
// Everything else passes through untouched.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		ep, ok := m.endpoints.FindByPath(r.URL.Path, r.Method)
		if !ok || !ep.AuthRequired {
			next.ServeHTTP(w, r)
			return
		}

		id, err := m.Authenticate(r)
		if err != nil {
			WriteError(w, err)
			return
		}
		if id != nil {
			r = r.WithContext(WithIdentity(r.Context(), *id))
		}
		next.ServeHTTP(w, r)
	})
}

// WriteError writes err as a JSON error response with the matching status.
// Basic authentication failures carry the WWW-Authenticate challenge.
// Errors that are not auth sentinels are reported as an internal error.
func WriteError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrAuthRequired) {
		w.Header().Set("WWW-Authenticate", BasicChallenge)
	}
	msg, ok := ClientMessage(err)
	if !ok {
		msg = "Internal server error"
	}
	httputil.WriteError(w, HTTPStatus(err), msg)
}
