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

//go:embed schema.json
var schemaJSON []byte

// ErrSchema is wrapped by every schema validation failure.
var ErrSchema = errors.New("configuration does not match schema")

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema that configuration files are checked against.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("config.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("config.json")
	})
	return compiledSchema, schemaErr
}

// validateSchema checks a decoded document against the configuration schema.
func validateSchema(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("schema compilation error: %w", err)
	}

	// Convert to JSON and back so that YAML and JSON documents reach the
	// validator with the same types.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w:\n%s", ErrSchema, strings.Join(schemaMessages(verr, nil), "\n"))
		}
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// schemaMessages flattens the leaf causes of a validation error into
// "location: message" lines.
func schemaMessages(err *jsonschema.ValidationError, out []string) []string {
	if len(err.Causes) == 0 {
		return append(out, fieldFromPointer(err.InstanceLocation)+": "+err.Message)
	}
	for _, cause := range err.Causes {
		out = schemaMessages(cause, out)
	}
	return out
}

// fieldFromPointer turns a JSON Pointer into dot notation: /actions/0/path
// becomes actions.0.path.
func fieldFromPointer(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return "(root)"
	}
	return strings.ReplaceAll(ptr, "/", ".")
}
