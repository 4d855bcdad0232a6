// Package id provides unique identifier generation utilities.
//
// This is the canonical source for ID generation across the mockario codebase:
//
//   - UUID: random UUID v4 used for endpoints, users, schemas and tables
//   - Short: 16-character hex IDs for request log entries
//
// UUIDs come from github.com/google/uuid; Short uses crypto/rand.
package id
