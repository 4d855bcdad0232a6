// Package requestlog records the traffic served on the mock surface so it can
// be inspected, filtered, counted, cleared and streamed from the management
// API.
//
// It is distinct from operational logging, which uses log/slog.
//
//	store := requestlog.NewMemoryStore(1000)
//	store.Log(&requestlog.Entry{
//	    Method: "GET",
//	    Path:   "/api/users",
//	    Status: 200,
//	})
//
// MemoryStore keeps a bounded FIFO buffer and fans new entries out to
// subscribers without blocking the request path.
package requestlog
