package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadWorkflow loads a workflow definition from a YAML or JSON file,
// applies defaults and validates it.
func LoadWorkflow(path string) (*WorkflowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}
	cfg, err := LoadWorkflowFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow from %s: %w", path, err)
	}
	return cfg, nil
}

// LoadWorkflowFromBytes parses a workflow definition from raw bytes.
// YAML is tried first, then JSON.
func LoadWorkflowFromBytes(data []byte) (*WorkflowConfig, error) {
	var cfg WorkflowConfig
	if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
		// Fallback to JSON
		if jsonErr := json.Unmarshal(data, &cfg); jsonErr != nil {
			return nil, fmt.Errorf("failed to parse as YAML or JSON: %w", yamlErr)
		}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w", err)
	}
	return &cfg, nil
}

// WorkflowFromMap decodes a workflow definition from a caller-supplied native
// structure (e.g. already-parsed JSON), applies defaults and validates it.
func WorkflowFromMap(input map[string]any) (*WorkflowConfig, error) {
	var cfg WorkflowConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return nil, fmt.Errorf("failed to decode workflow: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("workflow validation failed: %w", err)
	}
	return &cfg, nil
}
