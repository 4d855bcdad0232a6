package admin

import (
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/value"
)

func TestOpenAPIRoute_ValidDocument(t *testing.T) {
	f := newFixture(t)
	f.endpoints.Create(endpoint.Input{
		Path:     "/api/users",
		Method:   "GET",
		Response: value.Object(value.F("name", value.String("{{faker.name}}"))),
	})
	f.endpoints.Create(endpoint.Input{
		Path:         "/api/orders",
		Method:       "POST",
		Response:     value.Object(value.F("ok", value.Bool(true))),
		AuthRequired: true,
	})
	enable(t, f, map[string]any{"enabled": true, "type": "basic"})

	rec := f.do(t, http.MethodGet, "/api/openapi.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rec.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, doc.Validate(loader.Context))

	users := doc.Paths.Find("/api/users")
	require.NotNil(t, users)
	require.NotNil(t, users.Get)
	example := users.Get.Responses.Status(http.StatusOK).Value.Content.Get("application/json").Example
	assert.Equal(t, map[string]any{"name": "{{faker.name}}"}, example)
	assert.Nil(t, users.Get.Security)

	orders := doc.Paths.Find("/api/orders")
	require.NotNil(t, orders)
	require.NotNil(t, orders.Post)
	require.NotNil(t, orders.Post.Security)
	assert.Contains(t, (*orders.Post.Security)[0], SecuritySchemeName)

	scheme := doc.Components.SecuritySchemes[SecuritySchemeName].Value
	assert.Equal(t, "http", scheme.Type)
	assert.Equal(t, "basic", scheme.Scheme)

	login := doc.Paths.Find(auth.PathLogin)
	require.NotNil(t, login)
	assert.Equal(t, []string{"auth"}, login.Post.Tags)
}

func TestBuildOpenAPI_SchemeByType(t *testing.T) {
	tests := []struct {
		authType   string
		wantScheme string
	}{
		{auth.TypeJWT, "bearer"},
		{auth.TypeBearer, "bearer"},
		{auth.TypeAPIKey, "bearer"},
		{auth.TypeBasic, "basic"},
	}
	for _, tt := range tests {
		t.Run(tt.authType, func(t *testing.T) {
			doc := BuildOpenAPI(nil, auth.Settings{Enabled: true, Type: tt.authType}, "v1")
			ss := doc.Components.SecuritySchemes[SecuritySchemeName].Value
			assert.Equal(t, tt.wantScheme, ss.Scheme)
		})
	}
}

func TestBuildOpenAPI_DisabledAuthHasNoSecurity(t *testing.T) {
	eps := []endpoint.Endpoint{{ID: "1", Path: "/x", Method: "GET", Response: value.Int(1), AuthRequired: true}}
	doc := BuildOpenAPI(eps, auth.DefaultSettings(), "v1")

	assert.Nil(t, doc.Components)
	op := doc.Paths.Find("/x").Get
	require.NotNil(t, op)
	assert.Nil(t, op.Security)
	assert.Equal(t, "1", op.OperationID)
}
