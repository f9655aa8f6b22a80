package workflow

import "fmt"

// ExecutionError represents an error in the workflow execution system.
type ExecutionError struct {
	Component string
	Operation string
	Message   string
	Err       error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Component, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Component, e.Operation, e.Message)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewExecutionError creates a new execution error.
func NewExecutionError(component, operation, message string, err error) *ExecutionError {
	return &ExecutionError{
		Component: component,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ValidationError is the fatal configuration error kind: a malformed workflow
// rejected before any step executes. Detectable with errors.As.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid workflow: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("invalid workflow: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, err error) *ValidationError {
	return &ValidationError{Message: message, Err: err}
}
