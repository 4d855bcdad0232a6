package admin

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockario/mockario/pkg/schema"
)

func shopSchema() map[string]any {
	return map[string]any{
		"name": "shop",
		"tables": []any{
			map[string]any{
				"name": "customers",
				"fields": []any{
					map[string]any{"name": "email", "type": "email"},
					map[string]any{"name": "tier", "type": "string", "options": []string{"gold", "silver"}},
				},
			},
		},
		"relations": []any{},
	}
}

func TestSchemaLifecycle(t *testing.T) {
	f := newFixture(t)

	assert.JSONEq(t, `[]`, f.do(t, http.MethodGet, "/api/schemas", nil).Body.String())

	rec := f.do(t, http.MethodPost, "/api/schemas", shopSchema())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[schema.Schema](t, rec)
	require.Len(t, created.Tables, 1)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Tables[0].ID)

	rec = f.do(t, http.MethodGet, "/api/schemas/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	renamed := shopSchema()
	renamed["name"] = "store"
	rec = f.do(t, http.MethodPut, "/api/schemas/"+created.ID, renamed)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "store", decode[schema.Schema](t, rec).Name)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/schemas/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/schemas/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/api/schemas/"+created.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPut, "/api/schemas/"+created.ID, shopSchema()).Code)
}

func TestCreateSchema_Validation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/schemas", map[string]any{"tables": []any{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", errorMessage(t, rec))

	bad := shopSchema()
	bad["tables"].([]any)[0].(map[string]any)["fields"] = []any{map[string]any{"name": "x", "type": "blob"}}
	rec = f.do(t, http.MethodPost, "/api/schemas", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "must be one of")
}

func TestGenerateTableRecords(t *testing.T) {
	f := newFixture(t)
	created := decode[schema.Schema](t, f.do(t, http.MethodPost, "/api/schemas", shopSchema()))
	base := "/api/schemas/" + created.ID + "/tables/" + created.Tables[0].ID + "/generate"

	rec := f.do(t, http.MethodPost, base+"?count=4", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	records := decode[[]map[string]any](t, rec)
	require.Len(t, records, 4)
	for _, r := range records {
		assert.Contains(t, r["email"], "@")
		assert.Contains(t, []any{"gold", "silver"}, r["tier"])
	}

	records = decode[[]map[string]any](t, f.do(t, http.MethodPost, base, nil))
	assert.Len(t, records, DefaultTableRecords)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, base+"?count=x", nil).Code)

	rec = f.do(t, http.MethodPost, "/api/schemas/"+created.ID+"/tables/nope/generate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgTableMissing, errorMessage(t, rec))

	rec = f.do(t, http.MethodPost, "/api/schemas/nope/tables/nope/generate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgSchemaMissing, errorMessage(t, rec))
}
