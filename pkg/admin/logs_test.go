package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockario/mockario/pkg/requestlog"
)

func seedLogs(f *fixture) {
	f.logs.Log(&requestlog.Entry{Path: "/api/users", Method: "GET", Status: 200, EndpointID: "ep-1"})
	f.logs.Log(&requestlog.Entry{Path: "/api/users", Method: "POST", Status: 401, EndpointID: "ep-2"})
	f.logs.Log(&requestlog.Entry{Path: "/missing", Method: "GET", Status: 404})
}

func TestListLogs(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/logs", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	seedLogs(f)
	entries := decode[[]requestlog.Entry](t, f.do(t, http.MethodGet, "/api/logs", nil))
	require.Len(t, entries, 3)
	assert.Equal(t, "/missing", entries[0].Path, "newest first")
}

func TestListLogs_Filters(t *testing.T) {
	f := newFixture(t)
	seedLogs(f)

	tests := []struct {
		query string
		want  int
	}{
		{"method=get", 2},
		{"path=/api", 2},
		{"status=401", 1},
		{"endpointId=ep-1", 1},
		{"limit=1", 1},
		{"offset=2", 1},
		{"offset=5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			entries := decode[[]requestlog.Entry](t, f.do(t, http.MethodGet, "/api/logs?"+tt.query, nil))
			assert.Len(t, entries, tt.want)
		})
	}

	rec := f.do(t, http.MethodGet, "/api/logs?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be a non-negative integer", errorMessage(t, rec))
}

func TestLogs_GetCountClear(t *testing.T) {
	f := newFixture(t)
	seedLogs(f)

	assert.JSONEq(t, `{"count":3}`, f.do(t, http.MethodGet, "/api/logs/count", nil).Body.String())

	first := f.logs.List(&requestlog.Filter{Limit: 1})[0]
	rec := f.do(t, http.MethodGet, "/api/logs/"+first.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, first.ID, decode[requestlog.Entry](t, rec).ID)

	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/logs/unknown", nil).Code)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/logs", nil).Code)
	assert.Zero(t, f.logs.Count())
}

func TestStreamLogs(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.api)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/logs/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	// The server subscribes after the handshake, so keep logging until the
	// first entry arrives.
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				f.logs.Log(&requestlog.Entry{Path: "/stream", Method: "GET", Status: 200})
			}
		}
	}()

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)

	var entry requestlog.Entry
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "/stream", entry.Path)
	assert.Equal(t, 200, entry.Status)
}

func TestStreamLogs_OriginCheck(t *testing.T) {
	f := newFixture(t)
	api := New(f.api.svc, WithOriginPatterns([]string{"http://app.example:5173"}))
	srv := httptest.NewServer(api)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/logs/stream"

	dial := func(origin string) error {
		conn, resp, err := websocket.Dial(ctx, url, &websocket.DialOptions{
			HTTPHeader: http.Header{"Origin": {origin}},
		})
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err == nil {
			conn.Close(websocket.StatusNormalClosure, "")
		}
		return err
	}

	assert.NoError(t, dial("http://app.example:5173"))
	assert.Error(t, dial("http://evil.example"))
}

func TestOriginPatterns(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		want    []string
	}{
		{"wildcard", []string{"*"}, []string{"*"}},
		{"full origins", []string{"http://localhost:5173", "https://app.example"}, []string{"localhost:5173", "app.example"}},
		{"bare host", []string{"app.example"}, []string{"app.example"}},
		{"blank skipped", []string{" ", ""}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, originPatterns(tt.origins))
		})
	}
}
