package store

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed document.schema.json
var documentSchemaJSON []byte

const documentSchemaURL = "https://barisense.local/document.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// DocumentSchema returns the compiled schema for the persisted document.
func DocumentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse document schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(documentSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add document schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(documentSchemaURL)
	})
	return schema, schemaErr
}

// ValidateRaw checks raw JSON against the document schema.
func ValidateRaw(raw []byte) error {
	sch, err := DocumentSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}
