package admin

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockario/mockario/pkg/endpoint"
)

func usersEndpoint() map[string]any {
	return map[string]any{
		"path":     "/api/users",
		"method":   "GET",
		"response": map[string]any{"name": "{{faker.name}}"},
		"delay":    0,
	}
}

func TestCreateEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/endpoints", usersEndpoint())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	ep := decode[endpoint.Endpoint](t, rec)
	assert.NotEmpty(t, ep.ID)
	assert.Equal(t, "/api/users", ep.Path)
	assert.Equal(t, "GET", ep.Method)
	assert.False(t, ep.CreatedAt.IsZero())
	assert.Equal(t, 1, f.endpoints.Count())
}

func TestCreateEndpoint_Validation(t *testing.T) {
	tests := []struct {
		name string
		body any
		want string
	}{
		{"path only", map[string]any{"path": "/api/users"}, ErrMsgMissingFields},
		{"missing method", map[string]any{"path": "/a", "response": 1}, ErrMsgMissingFields},
		{"null response", map[string]any{"path": "/a", "method": "GET", "response": nil}, ErrMsgMissingFields},
		{"bad method", map[string]any{"path": "/a", "method": "TRACE", "response": 1}, ErrMsgInvalidMethod},
		{"bad response type", map[string]any{"path": "/a", "method": "GET", "response": 1, "responseType": "xml"}, "responseType must be one of json ts"},
		{"bad json", "{", ErrMsgInvalidJSON},
		{"empty body", nil, ErrMsgInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.do(t, http.MethodPost, "/api/endpoints", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, errorMessage(t, rec))
			assert.Zero(t, f.endpoints.Count())
		})
	}
}

func TestCreateEndpoint_LowercaseMethod(t *testing.T) {
	f := newFixture(t)
	body := usersEndpoint()
	body["method"] = "post"

	rec := f.do(t, http.MethodPost, "/api/endpoints", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "POST", decode[endpoint.Endpoint](t, rec).Method)
}

func TestCreateEndpoint_Duplicate(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/endpoints", usersEndpoint()).Code)

	rec := f.do(t, http.MethodPost, "/api/endpoints", usersEndpoint())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ErrMsgDuplicate, errorMessage(t, rec))
	assert.Equal(t, 1, f.endpoints.Count())
}

func TestListEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/endpoints", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	f.do(t, http.MethodPost, "/api/endpoints", usersEndpoint())
	list := decode[[]endpoint.Endpoint](t, f.do(t, http.MethodGet, "/api/endpoints", nil))
	require.Len(t, list, 1)
	assert.Equal(t, "/api/users", list[0].Path)
}

func TestEndpointLifecycle(t *testing.T) {
	f := newFixture(t)
	created := decode[endpoint.Endpoint](t, f.do(t, http.MethodPost, "/api/endpoints", usersEndpoint()))

	rec := f.do(t, http.MethodGet, "/api/endpoints/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.ID, decode[endpoint.Endpoint](t, rec).ID)

	rec = f.do(t, http.MethodPut, "/api/endpoints/"+created.ID, map[string]any{"delay": 250, "authRequired": true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[endpoint.Endpoint](t, rec)
	assert.Equal(t, 250, updated.Delay)
	assert.True(t, updated.AuthRequired)
	assert.Equal(t, "/api/users", updated.Path, "fields absent from the body are kept")
	assert.Equal(t, created.CreatedAt.UnixNano(), updated.CreatedAt.UnixNano())

	rec = f.do(t, http.MethodDelete, "/api/endpoints/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/endpoints/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ErrMsgEndpointMissing, errorMessage(t, rec))
}

func TestUpdateEndpoint_Errors(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/api/endpoints/missing", map[string]any{"delay": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	created := decode[endpoint.Endpoint](t, f.do(t, http.MethodPost, "/api/endpoints", usersEndpoint()))
	rec = f.do(t, http.MethodPut, "/api/endpoints/"+created.ID, map[string]any{"method": "CONNECT"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ErrMsgInvalidMethod, errorMessage(t, rec))

	rec = f.do(t, http.MethodPut, "/api/endpoints/"+created.ID, "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteEndpoint_Unknown(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodDelete, "/api/endpoints/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
