// Package admin implements the management HTTP API mounted under /api.
//
// Routes:
//
//	GET    /api/health
//	GET    /api/metrics
//	GET    /api/openapi.json
//
//	GET    /api/endpoints
//	POST   /api/endpoints
//	GET    /api/endpoints/{id}
//	PUT    /api/endpoints/{id}
//	DELETE /api/endpoints/{id}
//
//	GET    /api/auth/settings
//	PUT    /api/auth/settings
//	POST   /api/auth/login
//	POST   /api/auth/register
//	GET    /api/auth/users
//	POST   /api/auth/users
//	DELETE /api/auth/users/{id}
//	GET    /api/auth/endpoints
//	GET    /api/auth/me
//
//	GET    /api/logs
//	DELETE /api/logs
//	GET    /api/logs/count
//	GET    /api/logs/stream   (websocket)
//	GET    /api/logs/{id}
//
//	GET    /api/faker/methods
//	POST   /api/faker/preview
//	POST   /api/generate
//
//	GET    /api/schemas
//	POST   /api/schemas
//	GET    /api/schemas/{id}
//	PUT    /api/schemas/{id}
//	DELETE /api/schemas/{id}
//	POST   /api/schemas/{id}/tables/{tableId}/generate
//
// Errors are written as {"error": "<message>"}.
package admin
