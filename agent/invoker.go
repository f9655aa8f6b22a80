// Package agent defines the agent invocation boundary and the agent registry.
// Agents are opaque invocables: the workflow executor hands them resolved task
// data and records whatever they return, without inspecting how they build
// prompts or which model serves them.
package agent

import "context"

// Result is the structured outcome of one agent invocation.
// Response carries the agent's primary output; Data carries auxiliary
// key-value data the agent wants merged into the run's shared store.
type Result struct {
	Success  bool           `json:"success"`
	Response any            `json:"response,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Invoker is an external invocable unit that performs one task.
// Provider is an opaque hint (e.g. which LLM backend to use); invokers
// that don't care may ignore it.
type Invoker interface {
	Invoke(ctx context.Context, taskData map[string]any, provider string) (*Result, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, taskData map[string]any, provider string) (*Result, error)

func (f InvokerFunc) Invoke(ctx context.Context, taskData map[string]any, provider string) (*Result, error) {
	return f(ctx, taskData, provider)
}
