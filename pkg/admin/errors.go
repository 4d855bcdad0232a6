package admin

import (
	"errors"
	"log/slog"

	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/schema"
)

// Messages returned to clients.
const (
	ErrMsgInternalError   = "An internal error occurred"
	ErrMsgInvalidJSON     = "Invalid JSON in request body"
	ErrMsgNotFound        = "Resource not found"
	ErrMsgEndpointMissing = "Endpoint not found"
	ErrMsgSchemaMissing   = "Schema not found"
	ErrMsgTableMissing    = "Table not found"
	ErrMsgUserMissing     = "User not found"
	ErrMsgDuplicate       = "Endpoint with this path and method already exists"
	ErrMsgMissingFields   = "Path, method and response are required"
	ErrMsgInvalidMethod   = "Method must be one of GET, POST, PUT, DELETE, PATCH"
	ErrMsgKeysRequired    = "keys is required"
	ErrMsgAuthDisabled    = "Authentication is not enabled"
)

// sanitizeError returns a message safe for the response body. Known
// sentinels map to their canned message; anything else is logged in full and
// reported generically.
func sanitizeError(err error, log *slog.Logger, operation string, details ...any) string {
	switch {
	case errors.Is(err, endpoint.ErrNotFound):
		return ErrMsgEndpointMissing
	case errors.Is(err, endpoint.ErrDuplicate):
		return ErrMsgDuplicate
	case errors.Is(err, schema.ErrNotFound):
		return ErrMsgSchemaMissing
	case errors.Is(err, schema.ErrTableNotFound):
		return ErrMsgTableMissing
	}
	if log != nil {
		args := append([]any{"operation", operation, "error", err}, details...)
		log.Error("operation failed", args...)
	}
	return ErrMsgInternalError
}
