// Package value provides Value, an ordered JSON-like tagged value.
//
// Endpoint responses, request body examples and stored rows are arbitrary
// documents supplied by users. Value keeps them typed so the template
// engine can walk them exhaustively, and keeps object keys in the order
// they were written so a mock returns fields the way they were authored.
//
// A Value is immutable once built. The zero Value is null.
package value
