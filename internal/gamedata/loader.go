package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaFile is the embedded schema every profile file is checked against
// before decoding. Profile data is hand-edited; catching a typo here beats
// chasing a zero-valued stat at runtime.
const schemaFile = "profiles.schema.json"

var profileSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	raw, err := dataFS.ReadFile(schemaFile)
	if err != nil {
		panic(fmt.Sprintf("embedded schema missing: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaFile, bytes.NewReader(raw)); err != nil {
		panic(err)
	}
	schema, err := compiler.Compile(schemaFile)
	if err != nil {
		panic(err)
	}
	return schema
}

// Load reads, validates, and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}
	if err := profileSchema.Validate(doc); err != nil {
		return result, fmt.Errorf("schema validation failed for %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals a JSON file, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
