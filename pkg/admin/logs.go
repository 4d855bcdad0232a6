package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/coder/websocket"

	"github.com/mockario/mockario/pkg/httputil"
	"github.com/mockario/mockario/pkg/requestlog"
)

// parseLogFilter reads the list filters from the query string.
func parseLogFilter(r *http.Request) (*requestlog.Filter, string) {
	q := r.URL.Query()
	f := &requestlog.Filter{
		Method:     q.Get("method"),
		Path:       q.Get("path"),
		EndpointID: q.Get("endpointId"),
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"status", &f.Status},
		{"limit", &f.Limit},
		{"offset", &f.Offset},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, p.name + " must be a non-negative integer"
		}
		*p.dst = n
	}
	return f, ""
}

func (a *API) handleListLogs(w http.ResponseWriter, r *http.Request) {
	filter, msg := parseLogFilter(r)
	if msg != "" {
		httputil.WriteBadRequest(w, msg)
		return
	}
	httputil.WriteOK(w, a.svc.Logs.List(filter))
}

func (a *API) handleGetLog(w http.ResponseWriter, r *http.Request) {
	entry := a.svc.Logs.Get(r.PathValue("id"))
	if entry == nil {
		httputil.WriteNotFound(w, "Log entry not found")
		return
	}
	httputil.WriteOK(w, entry)
}

func (a *API) handleCountLogs(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, map[string]int{"count": a.svc.Logs.Count()})
}

func (a *API) handleClearLogs(w http.ResponseWriter, r *http.Request) {
	a.svc.Logs.Clear()
	httputil.WriteNoContent(w)
}

// handleStreamLogs upgrades to a websocket and pushes every new entry as one
// text message until either side goes away.
func (a *API) handleStreamLogs(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: a.originPatterns,
	})
	if err != nil {
		a.log.Debug("log stream upgrade failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "stream closed")

	sub, unsubscribe := a.svc.Logs.Subscribe()
	defer unsubscribe()

	// CloseRead handles control frames and cancels ctx when the peer leaves.
	ctx := conn.CloseRead(r.Context())
	a.streamEntries(ctx, conn, sub)
}

func (a *API) streamEntries(ctx context.Context, conn *websocket.Conn, sub requestlog.Subscriber) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-sub:
			if !ok {
				return
			}
			data, err := json.Marshal(entry)
			if err != nil {
				a.log.Error("failed to encode log entry", "error", err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				a.log.Debug("log stream write failed", "error", err)
				return
			}
		}
	}
}
