// Package workflow implements the sequential multi-agent workflow executor:
// it walks an ordered list of steps, resolves each step's task data from
// prior outputs and a run-scoped shared store, invokes the step's agent,
// applies an optional transformation to its output, and assembles a
// structured result with a data-flow trace.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/taskweave/taskweave/agent"
	"github.com/taskweave/taskweave/config"
	"github.com/taskweave/taskweave/logger"
)

// chainContextKey is the task-data key under which chain runs expose the
// responses of prior steps.
const chainContextKey = "workflow_context"

// Executor runs workflows strictly sequentially: a step never starts before
// the previous step's outcome is fully recorded. All run state lives for one
// Execute call only.
type Executor struct {
	agents          AgentServices
	transforms      *TransformRegistry
	defaultProvider string
	log             *slog.Logger
}

// NewExecutor creates a workflow executor. A nil transform registry gets the
// built-in transforms; a nil logger gets the package default.
func NewExecutor(agents AgentServices, transforms *TransformRegistry, log *slog.Logger) (*Executor, error) {
	if agents == nil {
		return nil, NewExecutionError("Executor", "NewExecutor", "agent services cannot be nil", nil)
	}
	if transforms == nil {
		transforms = NewTransformRegistry()
	}
	if log == nil {
		log = logger.Default()
	}
	return &Executor{
		agents:     agents,
		transforms: transforms,
		log:        log,
	}, nil
}

// SetDefaultProvider sets the provider hint used when a request carries none.
func (e *Executor) SetDefaultProvider(provider string) {
	e.defaultProvider = provider
}

// Transforms returns the executor's transform registry, so callers can
// register additional transforms before running workflows.
func (e *Executor) Transforms() *TransformRegistry {
	return e.transforms
}

// Execute runs a workflow. A malformed request is rejected before any step
// executes: the returned error is a *ValidationError and the result reports
// zero completed steps. Every other failure is captured inside the result,
// never as a returned error.
func (e *Executor) Execute(ctx context.Context, request *Request) (*Result, error) {
	jobID := uuid.New().String()
	start := time.Now()

	result := &Result{
		JobID:       jobID,
		Results:     make([]StepResult, 0),
		FinalData:   make(map[string]any),
		StepOutputs: make(map[string]any),
		DataFlow: DataFlow{
			Steps:           make([]DataFlowStep, 0),
			DataKeys:        make([]string, 0),
			Transformations: make([]string, 0),
		},
	}

	if err := validateRequest(request); err != nil {
		if request != nil {
			result.WorkflowSteps = len(request.Steps)
		}
		result.Error = err.Error()
		result.ExecutionTime = time.Since(start)
		e.log.Error("workflow rejected", "job_id", jobID, "error", err)
		return result, err
	}

	result.WorkflowSteps = len(request.Steps)

	provider := request.Provider
	if provider == "" {
		provider = e.defaultProvider
	}

	// The shared store is seeded from the caller's initial data and mutated
	// only by this run.
	shared := copyMap(request.InitialData)

	e.log.Info("starting workflow", "job_id", jobID, "steps", len(request.Steps))

	success := true
	for i := range request.Steps {
		step := &request.Steps[i]

		taskData := copyMap(step.TaskData)
		taskData[SharedDataKey] = copyMap(shared)

		// Input mapping: step outputs take precedence over the shared store.
		// Absent sources leave the target unset and are soft warnings only.
		var missing []string
		for target, source := range step.InputMapping {
			if v, ok := result.StepOutputs[source]; ok {
				taskData[target] = v
			} else if v, ok := shared[source]; ok {
				taskData[target] = v
			} else {
				missing = append(missing, source)
				e.log.Warn("mapped input not found",
					"job_id", jobID, "step", i, "target", target, "source", source)
			}
		}
		sort.Strings(missing)

		trace := DataFlowStep{
			Step:          i,
			Agent:         step.Agent,
			InputMapping:  step.InputMapping,
			OutputKey:     step.OutputKey,
			Transform:     step.Transform,
			MissingInputs: missing,
		}

		stepStart := time.Now()
		res, err := e.agents.Invoke(ctx, step.Agent, taskData, provider)

		stepResult := StepResult{Step: i, Agent: step.Agent}
		applyInvocation(&stepResult, res, err)
		stepResult.Duration = time.Since(stepStart)

		if !stepResult.Success {
			result.Results = append(result.Results, stepResult)
			result.DataFlow.Steps = append(result.DataFlow.Steps, trace)
			result.CompletedSteps++
			e.log.Error("step failed",
				"job_id", jobID, "step", i, "agent", step.Agent, "error", stepResult.Error)
			if step.OnError != config.OnErrorContinue {
				success = false
				break
			}
			continue
		}

		// Auxiliary data merges untransformed, last-write-wins.
		for k, v := range res.Data {
			shared[k] = v
		}

		// The output key always publishes the (transformed) primary response.
		if step.OutputKey != "" {
			value := res.Response
			if step.Transform != "" {
				transformed, terr := e.transforms.Apply(value, step.Transform)
				if terr != nil {
					e.log.Warn("transformation fell back to original value",
						"job_id", jobID, "step", i, "transform", step.Transform, "error", terr)
				}
				value = transformed
				result.DataFlow.Transformations = append(result.DataFlow.Transformations, step.Transform)
			}
			result.StepOutputs[step.OutputKey] = value
			appendKey(&result.DataFlow.DataKeys, step.OutputKey)
			trace.OutputProduced = true
		}

		result.Results = append(result.Results, stepResult)
		result.DataFlow.Steps = append(result.DataFlow.Steps, trace)
		result.CompletedSteps++
	}

	// The global data mapping applies even when the run halted early; absent
	// source keys are silently skipped.
	for dest, src := range request.DataMapping {
		if v, ok := result.StepOutputs[src]; ok {
			shared[dest] = v
		}
	}

	result.Success = success
	result.FinalData = shared
	result.ExecutionTime = time.Since(start)

	e.log.Info("workflow finished",
		"job_id", jobID, "success", result.Success,
		"completed", result.CompletedSteps, "total", result.WorkflowSteps,
		"duration", result.ExecutionTime)

	return result, nil
}

// RunAgent executes a single agent outside any workflow, with its own job id
// and timing. Failures are captured in the result, never returned.
func (e *Executor) RunAgent(ctx context.Context, agentName string, taskData map[string]any, provider string) *AgentRunResult {
	jobID := uuid.New().String()
	start := time.Now()

	if provider == "" {
		provider = e.defaultProvider
	}

	run := &AgentRunResult{
		JobID:    jobID,
		Agent:    agentName,
		Provider: provider,
	}

	e.log.Info("starting agent run", "job_id", jobID, "agent", agentName)

	res, err := e.agents.Invoke(ctx, agentName, copyMap(taskData), provider)
	switch {
	case err != nil:
		run.Error = err.Error()
	case res == nil:
		run.Error = "agent returned no result"
	case !res.Success:
		run.Error = res.Error
		run.Response = res.Response
	default:
		run.Success = true
		run.Response = res.Response
		run.Data = res.Data
	}
	run.ExecutionTime = time.Since(start)

	e.log.Info("agent run finished",
		"job_id", jobID, "agent", agentName, "success", run.Success, "duration", run.ExecutionTime)

	return run
}

// ExecuteChain runs a simple agent chain with no mappings or transforms:
// each successful response is exposed to later steps under
// "step_<n>_<agent>" in the workflow_context task-data key, and the first
// failure halts the chain.
func (e *Executor) ExecuteChain(ctx context.Context, steps []ChainStep, provider string) *Result {
	jobID := uuid.New().String()
	start := time.Now()

	if provider == "" {
		provider = e.defaultProvider
	}

	result := &Result{
		JobID:         jobID,
		WorkflowSteps: len(steps),
		Results:       make([]StepResult, 0, len(steps)),
		FinalData:     make(map[string]any),
		StepOutputs:   make(map[string]any),
		DataFlow: DataFlow{
			Steps:           make([]DataFlowStep, 0, len(steps)),
			DataKeys:        make([]string, 0),
			Transformations: make([]string, 0),
		},
	}

	e.log.Info("starting chain workflow", "job_id", jobID, "steps", len(steps))

	chainData := make(map[string]any)

	success := true
	for i, step := range steps {
		taskData := copyMap(step.TaskData)
		taskData[chainContextKey] = copyMap(chainData)

		stepStart := time.Now()
		res, err := e.agents.Invoke(ctx, step.Agent, taskData, provider)

		stepResult := StepResult{Step: i, Agent: step.Agent}
		applyInvocation(&stepResult, res, err)
		stepResult.Duration = time.Since(stepStart)

		result.Results = append(result.Results, stepResult)
		result.DataFlow.Steps = append(result.DataFlow.Steps, DataFlowStep{Step: i, Agent: step.Agent})
		result.CompletedSteps++

		if !stepResult.Success {
			success = false
			e.log.Error("chain halted",
				"job_id", jobID, "step", i, "agent", step.Agent, "error", stepResult.Error)
			break
		}

		chainData[fmt.Sprintf("step_%d_%s", i+1, step.Agent)] = res.Response
	}

	result.Success = success
	result.FinalData = chainData
	result.ExecutionTime = time.Since(start)

	e.log.Info("chain workflow finished",
		"job_id", jobID, "success", result.Success,
		"completed", result.CompletedSteps, "total", result.WorkflowSteps)

	return result
}

// validateRequest detects fatal configuration errors before any step runs.
func validateRequest(request *Request) error {
	if request == nil {
		return NewValidationError("request cannot be nil", nil)
	}
	if len(request.Steps) == 0 {
		return NewValidationError("workflow must have at least one step", nil)
	}
	for i := range request.Steps {
		if err := request.Steps[i].Validate(); err != nil {
			return NewValidationError(fmt.Sprintf("step %d", i), err)
		}
	}
	return nil
}

// applyInvocation fills a step result from an invocation outcome.
func applyInvocation(sr *StepResult, res *agent.Result, err error) {
	switch {
	case err != nil:
		sr.Error = err.Error()
	case res == nil:
		sr.Error = "agent returned no result"
	case !res.Success:
		sr.Error = res.Error
		sr.Response = res.Response
	default:
		sr.Success = true
		sr.Response = res.Response
		sr.Data = res.Data
	}
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// appendKey appends a key if it is not already present.
func appendKey(keys *[]string, key string) {
	for _, k := range *keys {
		if k == key {
			return
		}
	}
	*keys = append(*keys, key)
}
