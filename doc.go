// Package taskweave provides a multi-agent task orchestration layer for Go.
//
// Taskweave sequences calls to agents (opaque invocable units, typically
// backed by LLM providers), passing data between workflow steps via named
// outputs, input mappings and simple value transformations.
//
// # Quick Start
//
// Register agents and execute a workflow:
//
//	agents := agent.NewRegistry()
//	agents.RegisterAgent("summarizer", agent.InvokerFunc(
//		func(ctx context.Context, task map[string]any, provider string) (*agent.Result, error) {
//			return &agent.Result{Success: true, Response: "summary"}, nil
//		}))
//
//	exec, _ := workflow.NewExecutor(agents, nil, nil)
//	result, err := exec.Execute(ctx, &workflow.Request{
//		Steps: []config.StepConfig{
//			{Agent: "summarizer", OutputKey: "summary", Transform: "strip"},
//		},
//	})
//
// Workflow definitions can also be loaded from YAML or JSON files with the
// config package. See the workflow package for the execution semantics:
// shared store, step outputs, data-flow trace and per-step error modes.
package taskweave
