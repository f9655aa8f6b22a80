package workflow

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

// Built-in transformation names.
const (
	TransformUppercase      = "uppercase"
	TransformLowercase      = "lowercase"
	TransformStrip          = "strip"
	TransformJSONParse      = "json_parse"
	TransformToList         = "to_list"
	TransformToString       = "to_string"
	TransformExtractNumbers = "extract_numbers"
)

// TransformFunc is a pure unary transformation applied to a step's output
// before publication.
type TransformFunc func(value any) any

// TransformRegistry dispatches named transformations. Caller-registered
// transforms are consulted before the built-in table.
type TransformRegistry struct {
	mu     sync.RWMutex
	custom map[string]TransformFunc
}

// NewTransformRegistry creates a registry with the built-in transforms.
func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{
		custom: make(map[string]TransformFunc),
	}
}

// Register adds a caller-supplied transform, shadowing any built-in with the
// same name.
func (r *TransformRegistry) Register(name string, fn TransformFunc) error {
	if name == "" {
		return fmt.Errorf("transform name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("transform function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.custom[name]; exists {
		return fmt.Errorf("transform '%s' already registered", name)
	}
	r.custom[name] = fn
	return nil
}

// RegisterAll adds a caller-supplied mapping of transforms.
func (r *TransformRegistry) RegisterAll(transforms map[string]TransformFunc) error {
	for name, fn := range transforms {
		if err := r.Register(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// Names returns all known transform names (custom and built-in), sorted.
func (r *TransformRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{
		TransformUppercase:      true,
		TransformLowercase:      true,
		TransformStrip:          true,
		TransformJSONParse:      true,
		TransformToList:         true,
		TransformToString:       true,
		TransformExtractNumbers: true,
	}
	for name := range r.custom {
		seen[name] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply dispatches a transformation by name. It never panics and never fails
// hard: on any internal failure the original value is returned together with a
// non-nil error the caller should log as a warning, and unknown names return
// the value unchanged with a nil error.
func (r *TransformRegistry) Apply(value any, name string) (result any, err error) {
	r.mu.RLock()
	fn, isCustom := r.custom[name]
	r.mu.RUnlock()

	if isCustom {
		return applyCustom(fn, value)
	}

	switch name {
	case TransformUppercase:
		return strings.ToUpper(coerceString(value)), nil
	case TransformLowercase:
		return strings.ToLower(coerceString(value)), nil
	case TransformStrip:
		return strings.TrimSpace(coerceString(value)), nil
	case TransformJSONParse:
		return jsonParse(value)
	case TransformToList:
		return toList(value), nil
	case TransformToString:
		return coerceString(value), nil
	case TransformExtractNumbers:
		return extractNumbers(coerceString(value)), nil
	default:
		return value, nil
	}
}

// applyCustom runs a caller-supplied transform, recovering a panic into the
// untransformed-value fallback.
func applyCustom(fn TransformFunc, value any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = value
			err = fmt.Errorf("custom transform panicked: %v", rec)
		}
	}()
	return fn(value), nil
}

// coerceString converts any value to its string form.
func coerceString(value any) string {
	if s, err := cast.ToStringE(value); err == nil {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// jsonParse parses a string value as JSON. Non-string input and parse
// failures fall back to the original value.
func jsonParse(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, fmt.Errorf("json_parse requires a string, got %T", value)
	}

	var parsed any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return value, fmt.Errorf("json_parse failed: %w", err)
	}
	return parsed, nil
}

// toList wraps a value as a single-element sequence unless it already is one.
func toList(value any) any {
	rv := reflect.ValueOf(value)
	if rv.IsValid() {
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			return value
		}
	}
	return []any{value}
}

// extractNumbers keeps only the decimal digits of a string.
func extractNumbers(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
