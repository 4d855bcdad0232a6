package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/seed.schema.json
var seedSchemaJSON string

const seedSchemaURL = "seed.schema.json"

var (
	seedSchemaOnce sync.Once
	seedSchema     *jsonschema.Schema
	seedSchemaErr  error
)

// SeedSchema returns the JSON Schema seed files are checked against.
func SeedSchema() string {
	return seedSchemaJSON
}

func compiledSeedSchema() (*jsonschema.Schema, error) {
	seedSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(seedSchemaURL, strings.NewReader(seedSchemaJSON)); err != nil {
			seedSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		seedSchema, seedSchemaErr = compiler.Compile(seedSchemaURL)
	})
	return seedSchema, seedSchemaErr
}

// ValidateSeedJSON checks a JSON document against the seed schema. Each
// violation is reported as a ValidationError keyed by instance location.
func ValidateSeedJSON(data []byte) error {
	schema, err := compiledSeedSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	return errors.Join(schemaLeaves(ve)...)
}

// schemaLeaves flattens a validation error tree into its leaf causes, which
// carry the specific messages.
func schemaLeaves(ve *jsonschema.ValidationError) []error {
	if len(ve.Causes) == 0 {
		field := strings.TrimPrefix(ve.InstanceLocation, "/")
		return []error{&ValidationError{Field: strings.ReplaceAll(field, "/", "."), Message: ve.Message}}
	}
	var out []error
	for _, c := range ve.Causes {
		out = append(out, schemaLeaves(c)...)
	}
	return out
}
