// Package faker generates fake values for mock responses.
//
// A Faker holds a registry of named generators (name, email, uuid, number,
// date and so on). Each call is independent: asking twice for the same
// generator may return different values. A Faker built WithSeed replays the
// same sequence, which is what tests use.
//
// Besides direct generation the package infers a generator from a field
// name. A key specifier is either a bare field name ("email") or a name with
// an explicit generator ("joined:date"). Records builds rows of such fields.
package faker
