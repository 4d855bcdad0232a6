package admin

import (
	"net/http"
	"strconv"

	"github.com/mockario/mockario/pkg/httputil"
	"github.com/mockario/mockario/pkg/schema"
)

// DefaultTableRecords is the record count when ?count is absent.
const DefaultTableRecords = 10

func (a *API) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, a.svc.Schemas.List())
}

func (a *API) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	sc, ok := a.svc.Schemas.Get(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, ErrMsgSchemaMissing)
		return
	}
	httputil.WriteOK(w, sc)
}

// decodeSchemaInput reads and validates a schema body. It writes the 400
// itself and reports false on failure.
func decodeSchemaInput(w http.ResponseWriter, r *http.Request) (schema.Input, bool) {
	var in schema.Input
	if err := decodeJSONBody(w, r, &in); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return in, false
	}
	if err := validate.Struct(in); err != nil {
		httputil.WriteBadRequest(w, validationMessage(err))
		return in, false
	}
	return in, true
}

func (a *API) handleCreateSchema(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeSchemaInput(w, r)
	if !ok {
		return
	}
	httputil.WriteCreated(w, a.svc.Schemas.Create(in))
}

func (a *API) handleUpdateSchema(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeSchemaInput(w, r)
	if !ok {
		return
	}
	sc, ok := a.svc.Schemas.Update(r.PathValue("id"), in)
	if !ok {
		httputil.WriteNotFound(w, ErrMsgSchemaMissing)
		return
	}
	httputil.WriteOK(w, sc)
}

func (a *API) handleDeleteSchema(w http.ResponseWriter, r *http.Request) {
	if !a.svc.Schemas.Delete(r.PathValue("id")) {
		httputil.WriteNotFound(w, ErrMsgSchemaMissing)
		return
	}
	httputil.WriteNoContent(w)
}

func (a *API) handleGenerateTableRecords(w http.ResponseWriter, r *http.Request) {
	count := DefaultTableRecords
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteBadRequest(w, "count must be a non-negative integer")
			return
		}
		count = n
	}

	table, err := a.svc.Schemas.Table(r.PathValue("id"), r.PathValue("tableId"))
	if err != nil {
		httputil.WriteNotFound(w, sanitizeError(err, a.log, "generate table records"))
		return
	}
	httputil.WriteOK(w, a.generator.Records(table, count))
}
