// Package auth implements the optional authentication layer of the mock
// surface: process-wide settings, the user store, password hashing, token
// minting and decoding, and the HTTP gate that protects endpoints marked
// authRequired.
//
// Enabling authentication provisions three built-in endpoints
// (/_auth/login, /_auth/register, /_auth/me) in the endpoint registry.
// Disabling it removes them and deletes every user. Both transitions run to
// completion before UpdateSettings returns.
package auth
