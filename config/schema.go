package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// WorkflowSchema generates a JSON Schema for the workflow definition shape.
// Callers can use it to validate definitions before handing them to the
// executor, or to auto-generate editing forms.
func WorkflowSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		// Inline all definitions (no $ref)
		DoNotReference: true,
	}

	schema := reflector.Reflect(&WorkflowConfig{})
	schema.ID = "https://taskweave.dev/schemas/workflow.json"
	schema.Title = "Taskweave Workflow Definition"
	schema.Description = "Ordered multi-agent workflow with input mappings, output keys and transformations"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// WorkflowSchemaJSON renders the workflow definition schema as indented JSON.
func WorkflowSchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(WorkflowSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal workflow schema: %w", err)
	}
	return data, nil
}
