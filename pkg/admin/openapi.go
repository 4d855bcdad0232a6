package admin

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/httputil"
)

// SecuritySchemeName names the single security scheme of exported documents.
const SecuritySchemeName = "mockarioAuth"

// BuildOpenAPI describes the registered endpoints as an OpenAPI 3.0
// document. Each endpoint becomes one operation whose 200 example is the
// literal, unsubstituted response. When auth is enabled, authRequired
// endpoints carry a security requirement for the active auth type.
func BuildOpenAPI(endpoints []endpoint.Endpoint, settings auth.Settings, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Mockario",
			Description: "Mock endpoints served by mockario",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}

	secured := settings.Enabled
	if secured {
		doc.Components = &openapi3.Components{
			SecuritySchemes: openapi3.SecuritySchemes{
				SecuritySchemeName: &openapi3.SecuritySchemeRef{Value: securityScheme(settings.Type)},
			},
		}
	}

	for _, ep := range endpoints {
		op := openapi3.NewOperation()
		op.OperationID = ep.ID
		op.Summary = ep.Method + " " + ep.Path
		if auth.IsBuiltinPath(ep.Path) {
			op.Tags = []string{"auth"}
		}

		ok := openapi3.NewResponse().
			WithDescription("Mock response").
			WithContent(openapi3.Content{
				"application/json": &openapi3.MediaType{Example: ep.Response.Any()},
			})
		op.Responses = openapi3.NewResponses(openapi3.WithStatus(http.StatusOK, &openapi3.ResponseRef{Value: ok}))

		if ep.RequestBody != nil && ep.RequestBody.Example != nil {
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithContent(openapi3.Content{
					"application/json": &openapi3.MediaType{Example: ep.RequestBody.Example.Any()},
				}),
			}
		}

		if secured && ep.AuthRequired {
			op.Security = openapi3.NewSecurityRequirements().
				With(openapi3.NewSecurityRequirement().Authenticate(SecuritySchemeName))
			op.Responses.Set("401", &openapi3.ResponseRef{
				Value: openapi3.NewResponse().WithDescription("Authentication failed"),
			})
		}

		doc.AddOperation(ep.Path, strings.ToUpper(ep.Method), op)
	}
	return doc
}

// securityScheme maps an auth type to its OpenAPI scheme. apiKey
// credentials travel as "Authorization: Bearer <key>", so they are described
// as plain bearer auth.
func securityScheme(authType string) *openapi3.SecurityScheme {
	switch authType {
	case auth.TypeBasic:
		return openapi3.NewSecurityScheme().WithType("http").WithScheme("basic")
	case auth.TypeAPIKey:
		return openapi3.NewSecurityScheme().WithType("http").WithScheme("bearer").
			WithDescription("Static API key sent as a bearer token")
	default:
		return openapi3.NewJWTSecurityScheme()
	}
}

func (a *API) handleGetOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	doc := BuildOpenAPI(a.svc.Endpoints.FindAll(), a.svc.Auth.Settings(), a.version)
	httputil.WriteOK(w, doc)
}
