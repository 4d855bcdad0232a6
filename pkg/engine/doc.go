// Package engine serves the mock surface and composes the services behind it.
//
// # Request flow
//
//	request
//	   │
//	   ▼
//	CORS ──► /api route? ──yes──► admin.API
//	            │no
//	            ▼
//	        record (request log, metrics)
//	            │
//	            ▼
//	        auth gate (auth.Manager.Middleware)
//	            │
//	            ▼
//	        Handler ──► Resolver: lookup, delay, template substitution
//
// Management routes are matched first; any request they do not claim is
// served from the endpoint registry, so mock endpoints may live under /api
// as long as they do not collide with a management route.
//
// Server is the composition root. It owns the endpoint registry, the user
// store, the auth manager, the schema store, the request log and the
// metrics, restores them from the configured store backend on Start, and
// saves them back through a debounced persister as they change.
package engine
