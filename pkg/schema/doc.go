// Package schema stores data-model schemas (tables, fields, relations) and
// generates fake records for a table from its field definitions.
//
// Relations are stored for the editor but not enforced during generation.
package schema
