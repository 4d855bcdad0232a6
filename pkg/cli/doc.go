// Package cli implements the mockario command line.
//
//	mockario serve [--port 3001] [--load 'seeds/**/*.yaml'] [--store file --store-dsn state.json]
//	mockario endpoints list|add|delete
//	mockario logs [--follow] [--limit 20]
//	mockario generate --keys name,email:email,age:number --count 3
//	mockario version
//
// Client commands talk to a running server at --server-url.
package cli
