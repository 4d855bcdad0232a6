// Package endpoint holds mock endpoint definitions and the registry that
// owns them.
//
// The Registry is the authoritative in-memory store. It never rejects a
// duplicate (path, method) pair on Create; callers that want uniqueness use
// CreateIfAbsent, which checks and inserts under one lock. When duplicates do
// exist, FindByPath returns the earliest-created match.
package endpoint
