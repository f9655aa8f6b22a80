package workflow

import (
	"context"
	"time"

	"github.com/taskweave/taskweave/agent"
	"github.com/taskweave/taskweave/config"
)

// SharedDataKey is the reserved task-data key under which every invocation
// receives a snapshot of the run's shared store.
const SharedDataKey = "shared_data"

// AgentServices provides abstract access to agent invocation for the executor.
// The agent registry satisfies this interface.
type AgentServices interface {
	// Invoke resolves an agent by name and executes it with the given task data.
	Invoke(ctx context.Context, agentName string, taskData map[string]any, provider string) (*agent.Result, error)

	// IsAgentAvailable reports whether an agent is registered.
	IsAgentAvailable(agentName string) bool

	// ListAgents returns the names of all registered agents.
	ListAgents() []string
}

// Request contains everything needed to execute one workflow run.
type Request struct {
	// Steps is the ordered, non-empty step sequence.
	Steps []config.StepConfig

	// InitialData seeds the run's shared store.
	InitialData map[string]any

	// Provider overrides the executor's default provider for this run.
	Provider string

	// DataMapping copies step outputs into the shared store after the run:
	// destination shared key -> source output key.
	DataMapping map[string]string
}

// NewRequestFromConfig builds a Request from a workflow definition.
func NewRequestFromConfig(cfg *config.WorkflowConfig) *Request {
	if cfg == nil {
		return &Request{}
	}
	return &Request{
		Steps:       cfg.Steps,
		InitialData: cfg.InitialData,
		Provider:    cfg.Provider,
		DataMapping: cfg.DataMapping,
	}
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	Step     int            `json:"step"`
	Agent    string         `json:"agent"`
	Success  bool           `json:"success"`
	Response any            `json:"response,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// DataFlowStep describes how data moved through one executed step.
type DataFlowStep struct {
	Step           int               `json:"step"`
	Agent          string            `json:"agent"`
	InputMapping   map[string]string `json:"input_mapping,omitempty"`
	OutputKey      string            `json:"output_key,omitempty"`
	Transform      string            `json:"transform,omitempty"`
	OutputProduced bool              `json:"output_produced"`

	// MissingInputs lists mapped source keys that were absent from both the
	// step outputs and the shared store (sorted).
	MissingInputs []string `json:"missing_inputs,omitempty"`
}

// DataFlow is the run's data-flow trace: one entry per executed step, the
// output keys generated, and the transformations dispatched, all in order.
type DataFlow struct {
	Steps           []DataFlowStep `json:"steps"`
	DataKeys        []string       `json:"data_keys"`
	Transformations []string       `json:"transformations"`
}

// Result is the terminal artifact of a workflow run. Step-level failures are
// captured here as data rather than propagated as errors.
type Result struct {
	Success        bool           `json:"success"`
	JobID          string         `json:"job_id"`
	Error          string         `json:"error,omitempty"`
	ExecutionTime  time.Duration  `json:"execution_time"`
	WorkflowSteps  int            `json:"workflow_steps"`
	CompletedSteps int            `json:"completed_steps"`
	Results        []StepResult   `json:"results"`
	FinalData      map[string]any `json:"final_data"`
	StepOutputs    map[string]any `json:"step_outputs"`
	DataFlow       DataFlow       `json:"data_flow"`
}

// AgentRunResult is the outcome of a standalone single-agent run.
type AgentRunResult struct {
	Success       bool           `json:"success"`
	JobID         string         `json:"job_id"`
	Agent         string         `json:"agent"`
	Provider      string         `json:"provider,omitempty"`
	Response      any            `json:"response,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	Error         string         `json:"error,omitempty"`
	ExecutionTime time.Duration  `json:"execution_time"`
}

// ChainStep is one entry of a simple chain workflow: an agent plus its base
// task data, with no mappings or transformations.
type ChainStep struct {
	Agent    string         `json:"agent" yaml:"agent"`
	TaskData map[string]any `json:"task_data,omitempty" yaml:"task_data,omitempty"`
}
