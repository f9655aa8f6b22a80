package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskweave/taskweave/registry"
)

// RegistryError represents an agent registry error.
type RegistryError struct {
	Component string
	Operation string
	Message   string
	Err       error
}

func (e *RegistryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Component, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Component, e.Operation, e.Message)
}

func (e *RegistryError) Unwrap() error {
	return e.Err
}

// NewRegistryError creates a new registry error.
func NewRegistryError(component, operation, message string, err error) *RegistryError {
	return &RegistryError{
		Component: component,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Registry manages registered agent invocables by name. It satisfies the
// workflow executor's AgentServices contract.
type Registry struct {
	*registry.BaseRegistry[Invoker]
}

// NewRegistry creates a new agent registry.
func NewRegistry() *Registry {
	return &Registry{
		BaseRegistry: registry.NewBaseRegistry[Invoker](),
	}
}

// RegisterAgent registers an invoker under a unique name.
func (r *Registry) RegisterAgent(name string, invoker Invoker) error {
	if name == "" {
		return NewRegistryError("Registry", "RegisterAgent", "agent name cannot be empty", nil)
	}
	if invoker == nil {
		return NewRegistryError("Registry", "RegisterAgent", "invoker cannot be nil", nil)
	}
	if err := r.Register(name, invoker); err != nil {
		return NewRegistryError("Registry", "RegisterAgent",
			fmt.Sprintf("failed to register agent '%s'", name), err)
	}
	return nil
}

// GetAgent retrieves an invoker by name.
func (r *Registry) GetAgent(name string) (Invoker, error) {
	invoker, exists := r.Get(name)
	if !exists {
		return nil, NewRegistryError("Registry", "GetAgent",
			fmt.Sprintf("agent '%s' not registered", name), nil)
	}
	return invoker, nil
}

// ListAgents returns all registered agent names in sorted order.
func (r *Registry) ListAgents() []string {
	return r.Names()
}

// IsAgentAvailable reports whether an agent is registered.
func (r *Registry) IsAgentAvailable(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// Invoke resolves an agent by name and dispatches the invocation. An
// unregistered name is reported with the list of available agents.
func (r *Registry) Invoke(ctx context.Context, name string, taskData map[string]any, provider string) (*Result, error) {
	invoker, exists := r.Get(name)
	if !exists {
		return nil, NewRegistryError("Registry", "Invoke",
			fmt.Sprintf("unknown agent '%s' (available: %s)", name, strings.Join(r.Names(), ", ")), nil)
	}
	return invoker.Invoke(ctx, taskData, provider)
}
