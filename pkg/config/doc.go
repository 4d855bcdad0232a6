// Package config holds the server configuration and the seed files that
// preload endpoints, authentication settings and users at startup.
//
// Seed files are YAML or JSON, detected by extension:
//
//	endpoints:
//	  - path: /api/users
//	    method: GET
//	    response:
//	      name: "{{faker.name}}"
//	auth:
//	  enabled: true
//	  type: basic
//	users:
//	  - username: alice
//	    password: secret
//
// Every file is checked against an embedded JSON Schema before decoding.
package config
