// Package template substitutes {{faker.<method>}} placeholders with
// generated values.
//
// Placeholders are matched left to right without overlap and each one is
// generated independently. A placeholder naming an unknown generator is left
// exactly as written, braces included. Substitution never fails.
//
//	engine := template.New(faker.New())
//	engine.Substitute("Hello {{faker.firstName}}") // "Hello Ava"
//
// Process applies the same rule to every string inside a value.Value,
// leaving numbers, booleans and null untouched.
package template
