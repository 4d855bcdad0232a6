package admin

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mockario/mockario/pkg/auth"
)

func TestAuthSettings_Get(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/auth/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["enabled"])
	assert.Equal(t, "jwt", body["type"])
	assert.Equal(t, "24h", body["jwtExpiry"])
	assert.Equal(t, []any{}, body["users"])
}

func TestAuthSettings_GetListsRedactedUsers(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Users().Create("alice", "secret")
	require.NoError(t, err)

	body := decode[map[string]any](t, f.do(t, http.MethodGet, "/api/auth/settings", nil))
	users, ok := body["users"].([]any)
	require.True(t, ok)
	require.Len(t, users, 1)

	u := users[0].(map[string]any)
	assert.Equal(t, "alice", u["username"])
	assert.NotEmpty(t, u["id"])
	assert.NotEmpty(t, u["createdAt"])
	assert.NotContains(t, u, "password")
}

func TestAuthSettings_UpdateEnablesAndProvisions(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/api/auth/settings", map[string]any{"enabled": true, "type": "basic"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	settings := decode[auth.Settings](t, rec)
	assert.True(t, settings.Enabled)
	assert.Equal(t, auth.TypeBasic, settings.Type)

	eps := decode[[]map[string]any](t, f.do(t, http.MethodGet, "/api/auth/endpoints", nil))
	assert.Len(t, eps, 3)

	rec = f.do(t, http.MethodPut, "/api/auth/settings", map[string]any{"enabled": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, f.do(t, http.MethodGet, "/api/auth/endpoints", nil).Body.String())
}

func TestAuthSettings_RejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPut, "/api/auth/settings", map[string]any{"type": "oauth"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, auth.ErrInvalidType.Error(), errorMessage(t, rec))
	assert.Equal(t, auth.TypeJWT, f.auth.Settings().Type)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username and password required", errorMessage(t, rec))

	rec = f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "alice", "password": "pw"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	enable(t, f, map[string]any{"enabled": true, "type": "jwt", "jwtSecret": "s3cret"})
	_, err := f.auth.Users().Create("alice", "pw")
	require.NoError(t, err)

	rec = f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", errorMessage(t, rec))

	rec = f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[auth.LoginResult](t, rec)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.Username)

	rec = f.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", "Bearer "+res.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]map[string]string](t, rec)
	assert.Equal(t, "alice", me["user"]["username"])
}

func TestLogin_MissingSecret(t *testing.T) {
	f := newFixture(t)
	enable(t, f, map[string]any{"enabled": true, "type": "bearer"})
	_, err := f.auth.Users().Create("bob", "pw")
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/api/auth/login", map[string]any{"username": "bob", "password": "pw"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "JWT not configured", errorMessage(t, rec))
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	creds := map[string]any{"username": "carol", "password": "pw"}

	rec := f.do(t, http.MethodPost, "/api/auth/register", creds)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Public registration is not allowed", errorMessage(t, rec))

	enable(t, f, map[string]any{"enabled": true, "allowRegister": true})

	rec = f.do(t, http.MethodPost, "/api/auth/register", map[string]any{"username": "carol"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/auth/register", creds)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "carol", decode[map[string]map[string]string](t, rec)["user"]["username"])

	rec = f.do(t, http.MethodPost, "/api/auth/register", creds)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already exists", errorMessage(t, rec))
}

func TestUsers(t *testing.T) {
	f := newFixture(t)

	assert.JSONEq(t, `[]`, f.do(t, http.MethodGet, "/api/auth/users", nil).Body.String())

	rec := f.do(t, http.MethodPost, "/api/auth/users", map[string]any{"username": "dave", "password": "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)
	userID := decode[map[string]map[string]string](t, rec)["user"]["id"]
	require.NotEmpty(t, userID)

	rec = f.do(t, http.MethodPost, "/api/auth/users", map[string]any{"username": "dave", "password": "other"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/auth/users", map[string]any{"password": "pw"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	users := decode[[]auth.User](t, f.do(t, http.MethodGet, "/api/auth/users", nil))
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/auth/users/"+userID, nil).Code)
	rec = f.do(t, http.MethodDelete, "/api/auth/users/"+userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", errorMessage(t, rec))
}

func TestUsers_LongPasswordWithBcrypt(t *testing.T) {
	f := newFixtureWithHasher(t, auth.BcryptHasher{Cost: bcrypt.MinCost})
	long := strings.Repeat("p", 80)

	rec := f.do(t, http.MethodPost, "/api/auth/users", map[string]any{"username": "gus", "password": long})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	enable(t, f, map[string]any{"enabled": true, "type": "basic"})
	rec = f.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", basic("gus", long))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gus", decode[map[string]map[string]string](t, rec)["user"]["username"])

	rec = f.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", basic("gus", long[:72]))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	enable(t, f, map[string]any{"enabled": true, "type": "basic"})
	_, err := f.auth.Users().Create("erin", "pw")
	require.NoError(t, err)

	rec = f.do(t, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.BasicChallenge, rec.Header().Get("WWW-Authenticate"))

	rec = f.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", basic("erin", "pw"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "erin", decode[map[string]map[string]string](t, rec)["user"]["username"])
}

func TestMe_APIKeyHasNoIdentity(t *testing.T) {
	f := newFixture(t)
	enable(t, f, map[string]any{"enabled": true, "type": "apiKey", "apiKey": "k-123"})

	rec := f.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", "Bearer k-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/api/auth/me", nil, "Authorization", "Bearer nope")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid API key", errorMessage(t, rec))
}

func enable(t *testing.T, f *fixture, patch map[string]any) {
	t.Helper()
	rec := f.do(t, http.MethodPut, "/api/auth/settings", patch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
