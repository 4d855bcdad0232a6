package auth

import (
	"strings"

	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/value"
)

// Built-in endpoint paths provisioned when authentication is enabled.
const (
	PathLogin    = "/_auth/login"
	PathRegister = "/_auth/register"
	PathMe       = "/_auth/me"
)

const builtinPrefix = "/_auth/"

var builtinSuffixes = []string{"login", "register", "me"}

func credentialsBody() *endpoint.RequestBody {
	return &endpoint.RequestBody{
		Source: endpoint.BodySourceKeys,
		Keys:   []string{"username:string", "password:string"},
	}
}

func emptyUser() value.Value {
	return value.Object(
		value.F("id", value.String("")),
		value.F("username", value.String("")),
	)
}

// BuiltinEndpoints returns the templates of the three auth endpoints.
func BuiltinEndpoints() []endpoint.Input {
	return []endpoint.Input{
		{
			Path:   PathLogin,
			Method: endpoint.MethodPost,
			Response: value.Object(
				value.F("message", value.String("Login endpoint")),
				value.F("token", value.String("jwt-token")),
			),
			ResponseType: endpoint.ResponseTypeJSON,
			RequestBody:  credentialsBody(),
		},
		{
			Path:   PathRegister,
			Method: endpoint.MethodPost,
			Response: value.Object(
				value.F("message", value.String("Register endpoint")),
				value.F("user", emptyUser()),
			),
			ResponseType: endpoint.ResponseTypeJSON,
			RequestBody:  credentialsBody(),
		},
		{
			Path:   PathMe,
			Method: endpoint.MethodGet,
			Response: value.Object(
				value.F("message", value.String("Current user info")),
				value.F("user", emptyUser()),
			),
			ResponseType: endpoint.ResponseTypeJSON,
			AuthRequired: true,
		},
	}
}

// IsBuiltinPath reports whether path belongs to a built-in auth endpoint:
// it starts with /_auth/ and ends with login, register or me.
func IsBuiltinPath(path string) bool {
	if !strings.HasPrefix(path, builtinPrefix) {
		return false
	}
	for _, suffix := range builtinSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

func isBuiltin(ep endpoint.Endpoint) bool {
	return IsBuiltinPath(ep.Path)
}
