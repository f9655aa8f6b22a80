// Package config provides the workflow definition types consumed by the
// executor, loaded from YAML/JSON files or caller-supplied native structures.
package config

import "fmt"

// Error modes for workflow steps.
const (
	OnErrorStop     = "stop"
	OnErrorContinue = "continue"
)

// StepConfig defines one workflow step bound to one agent invocation.
type StepConfig struct {
	// Agent names the registered invocable to call. Required.
	Agent string `yaml:"agent" json:"agent"`

	// TaskData is the step's base task data, merged before input mapping.
	TaskData map[string]any `yaml:"task_data,omitempty" json:"task_data,omitempty"`

	// InputMapping pulls named values from prior step outputs (or the shared
	// store) into the task data: target key -> source output key.
	InputMapping map[string]string `yaml:"input_mapping,omitempty" json:"input_mapping,omitempty"`

	// OutputKey names where this step's response is published for later steps.
	OutputKey string `yaml:"output_key,omitempty" json:"output_key,omitempty"`

	// Transform names a transformation applied to the response before
	// publication under OutputKey.
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty"`

	// OnError is "stop" (default) or "continue".
	OnError string `yaml:"on_error,omitempty" json:"on_error,omitempty"`
}

// Validate implements validation for StepConfig.
func (c *StepConfig) Validate() error {
	if c.Agent == "" {
		return fmt.Errorf("step agent is required")
	}
	switch c.OnError {
	case "", OnErrorStop, OnErrorContinue:
	default:
		return fmt.Errorf("invalid on_error '%s' (must be '%s' or '%s')", c.OnError, OnErrorStop, OnErrorContinue)
	}
	return nil
}

// SetDefaults implements defaults for StepConfig.
func (c *StepConfig) SetDefaults() {
	if c.OnError == "" {
		c.OnError = OnErrorStop
	}
}

// WorkflowConfig represents a complete workflow definition.
type WorkflowConfig struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Provider is the default provider hint passed to every agent invocation.
	Provider string `yaml:"provider,omitempty" json:"provider,omitempty"`

	// InitialData seeds the run's shared store.
	InitialData map[string]any `yaml:"initial_data,omitempty" json:"initial_data,omitempty"`

	// DataMapping copies step outputs into the shared store after the run:
	// destination shared key -> source output key.
	DataMapping map[string]string `yaml:"data_mapping,omitempty" json:"data_mapping,omitempty"`

	Steps []StepConfig `yaml:"steps" json:"steps"`
}

// Validate implements validation for WorkflowConfig.
func (c *WorkflowConfig) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("workflow must have at least one step")
	}
	for i := range c.Steps {
		if err := c.Steps[i].Validate(); err != nil {
			return fmt.Errorf("step %d validation failed: %w", i, err)
		}
	}
	return nil
}

// SetDefaults implements defaults for WorkflowConfig.
func (c *WorkflowConfig) SetDefaults() {
	for i := range c.Steps {
		c.Steps[i].SetDefaults()
	}
	if c.InitialData == nil {
		c.InitialData = make(map[string]any)
	}
}
