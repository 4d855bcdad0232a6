package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockario/mockario/pkg/cli/internal/output"
	"github.com/mockario/mockario/pkg/cliconfig"
	"github.com/mockario/mockario/pkg/config"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/engine"
	"github.com/mockario/mockario/pkg/faker"
	"github.com/mockario/mockario/pkg/value"
)

// syncBuffer is a bytes.Buffer safe for a command writing from one
// goroutine while the test polls from another.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// isolate keeps user config files and MOCKARIO_ variables out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	for _, env := range []string{
		cliconfig.EnvPort, cliconfig.EnvHost, cliconfig.EnvStore, cliconfig.EnvStoreDSN,
		cliconfig.EnvMaxLogEntries, cliconfig.EnvLogLevel, cliconfig.EnvLogFormat,
		cliconfig.EnvServerURL, cliconfig.EnvJSON,
	} {
		t.Setenv(env, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runContext(context.Background(), t, args...)
}

func runContext(ctx context.Context, t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out syncBuffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

// newTarget serves an engine handler and returns it with its URL.
func newTarget(t *testing.T) (*engine.Server, string) {
	t.Helper()
	cfg := config.DefaultServerConfiguration()
	cfg.PasswordHasher = "legacy"
	srv, err := engine.NewServer(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts.URL
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mockario dev (commit none, built unknown)")

	out, err = run(t, "version", "--json")
	require.NoError(t, err)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestGenerate_Seeded(t *testing.T) {
	isolate(t)

	out, err := run(t, "generate", "--keys", "name,email:email", "--count", "2", "--seed", "7")
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, output.JSON(&want, faker.New(faker.WithSeed(7)).Records([]string{"name", "email:email"}, 2)))
	assert.Equal(t, want.String(), out)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Contains(t, records[0]["email"], "@")
}

func TestGenerate_ClampsCount(t *testing.T) {
	isolate(t)

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"generate", "--keys", "id:uuid", "--count", "5000"})
	require.NoError(t, cmd.Execute())

	var records []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	assert.Len(t, records, 1000)
	assert.Contains(t, errOut.String(), "Warning: count 5000 exceeds the limit")
}

func TestGenerate_RequiresKeys(t *testing.T) {
	isolate(t)
	_, err := run(t, "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys")
}

func TestEndpoints_AddListDelete(t *testing.T) {
	isolate(t)
	srv, url := newTarget(t)

	out, err := run(t, "--server-url", url, "endpoints", "add",
		"--path", "/users", "--method", "post", "--delay", "5",
		"--response", `{"name":"{{faker.name}}"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "POST /users")

	eps := srv.Endpoints().FindAll()
	require.Len(t, eps, 1)
	assert.Equal(t, endpoint.MethodPost, eps[0].Method)
	assert.Equal(t, 5, eps[0].Delay)

	out, err = run(t, "--server-url", url, "endpoints", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "METHOD")
	assert.Contains(t, out, eps[0].ID)
	assert.Contains(t, out, "5ms")

	out, err = run(t, "--server-url", url, "--json", "endpoints", "list")
	require.NoError(t, err)
	var listed []endpoint.Endpoint
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "/users", listed[0].Path)

	out, err = run(t, "--server-url", url, "endpoints", "delete", eps[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted endpoint "+eps[0].ID)
	assert.Empty(t, srv.Endpoints().FindAll())

	out, err = run(t, "--server-url", url, "endpoints", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No endpoints registered")
}

func TestEndpoints_AddFromFile(t *testing.T) {
	dir := isolate(t)
	srv, url := newTarget(t)
	file := filepath.Join(dir, "body.json")
	require.NoError(t, os.WriteFile(file, []byte(`[1,2,3]`), 0o600))

	_, err := run(t, "--server-url", url, "endpoints", "add", "--path", "/nums", "--response-file", file)
	require.NoError(t, err)

	ep, ok := srv.Endpoints().FindByPath("/nums", endpoint.MethodGet)
	require.True(t, ok)
	assert.Equal(t, 3, ep.Response.Len())
}

func TestEndpoints_AddErrors(t *testing.T) {
	isolate(t)
	_, url := newTarget(t)

	_, err := run(t, "--server-url", url, "endpoints", "add", "--path", "/x", "--response", "{nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")

	_, err = run(t, "--server-url", url, "endpoints", "add", "--path", "/x")
	require.Error(t, err)

	_, err = run(t, "--server-url", url, "endpoints", "add", "--path", "/x", "--response", "1")
	require.NoError(t, err)
	_, err = run(t, "--server-url", url, "endpoints", "add", "--path", "/x", "--response", "2")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Endpoint with this path and method already exists", apiErr.Message)
}

func TestEndpoints_DeleteMissing(t *testing.T) {
	isolate(t)
	_, url := newTarget(t)

	_, err := run(t, "--server-url", url, "endpoints", "delete", "nope")
	require.Error(t, err)
	assert.Equal(t, "endpoint nope not found", err.Error())
}

func TestEndpoints_ServerURLFromEnv(t *testing.T) {
	isolate(t)
	_, url := newTarget(t)
	t.Setenv(cliconfig.EnvServerURL, url)

	out, err := run(t, "endpoints", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No endpoints registered")
}

func TestEndpoints_Unreachable(t *testing.T) {
	isolate(t)
	_, err := run(t, "--server-url", "http://127.0.0.1:1", "endpoints", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot connect to mockario")
}

func seedUsers(t *testing.T, srv *engine.Server) endpoint.Endpoint {
	t.Helper()
	ep, created := srv.Endpoints().CreateIfAbsent(endpoint.Input{
		Path:     "/users",
		Method:   endpoint.MethodGet,
		Response: value.Object(value.F("ok", value.Bool(true))),
	})
	require.True(t, created)
	return ep
}

func TestLogs_List(t *testing.T) {
	isolate(t)
	srv, url := newTarget(t)
	seedUsers(t, srv)

	for _, path := range []string{"/users", "/missing"} {
		resp, err := http.Get(url + path)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	out, err := run(t, "--server-url", url, "logs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`GET\s+/users\s+200`), lines[0])
	assert.Regexp(t, regexp.MustCompile(`GET\s+/missing\s+404`), lines[1])

	out, err = run(t, "--server-url", url, "--json", "logs", "--path", "/users")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "/users", entries[0]["path"])
}

func TestLogs_Empty(t *testing.T) {
	isolate(t)
	_, url := newTarget(t)

	out, err := run(t, "--server-url", url, "logs")
	require.NoError(t, err)
	assert.Contains(t, out, "No requests logged")
}

func TestLogs_Follow(t *testing.T) {
	isolate(t)
	srv, url := newTarget(t)
	seedUsers(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--server-url", url, "logs", "--follow", "--path", "/users"})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	// Keep sending until the stream has subscribed and delivered one.
	require.Eventually(t, func() bool {
		for _, path := range []string{"/ignored", "/users"} {
			resp, err := http.Get(url + path)
			if err != nil {
				return false
			}
			_ = resp.Body.Close()
		}
		return strings.Contains(out.String(), "/users")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("logs --follow did not stop")
	}
	assert.NotContains(t, out.String(), "/ignored")
}

func TestServe_StartsAndStops(t *testing.T) {
	isolate(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out, errOut syncBuffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"start", "--port", "0", "--host", "127.0.0.1", "--password-hasher", "legacy", "--log-level", "debug"})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	addr := regexp.MustCompile(`listening on (http://\S+)`)
	var base string
	require.Eventually(t, func() bool {
		m := addr.FindStringSubmatch(out.String())
		if m == nil {
			return false
		}
		base = m[1]
		return true
	}, 5*time.Second, 20*time.Millisecond)

	h, err := NewClient(base).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, Version, h.Version)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Contains(t, out.String(), "Server stopped")
	assert.Contains(t, errOut.String(), "server started")
}

func TestServe_InvalidPort(t *testing.T) {
	isolate(t)
	_, err := run(t, "serve", "--port", "70000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestRoot_MalformedConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, cliconfig.LocalConfigFileNames[0]), []byte("port: [\n"), 0o600))

	_, err := run(t, "endpoints", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), cliconfig.LocalConfigFileNames[0])
}

func TestParseError(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusTeapot)
	_, _ = rec.WriteString("plain failure\n")

	err := parseError(rec.Result())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTeapot, apiErr.StatusCode)
	assert.Equal(t, "admin API error (418): plain failure", err.Error())
	assert.False(t, IsNotFound(err))
}

func TestWebsocketURL(t *testing.T) {
	got, err := websocketURL("https://mock.example/api/logs/stream")
	require.NoError(t, err)
	assert.Equal(t, "wss://mock.example/api/logs/stream", got)

	_, err = websocketURL("ftp://x")
	assert.Error(t, err)
}
