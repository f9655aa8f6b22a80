package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_Builtins(t *testing.T) {
	transforms := NewTransformRegistry()

	tests := []struct {
		name      string
		transform string
		value     any
		want      any
		wantErr   bool
	}{
		{name: "uppercase", transform: TransformUppercase, value: "hello", want: "HELLO"},
		{name: "uppercase coerces", transform: TransformUppercase, value: 42, want: "42"},
		{name: "lowercase", transform: TransformLowercase, value: "HeLLo", want: "hello"},
		{name: "strip", transform: TransformStrip, value: "  padded \n", want: "padded"},
		{name: "to_string int", transform: TransformToString, value: 42, want: "42"},
		{name: "to_string bool", transform: TransformToString, value: true, want: "true"},
		{name: "extract_numbers", transform: TransformExtractNumbers, value: "abc123def456", want: "123456"},
		{name: "extract_numbers empty", transform: TransformExtractNumbers, value: "no digits", want: ""},
		{name: "extract_numbers from prose", transform: TransformExtractNumbers, value: "The revenue numbers are: 1000, 2000", want: "10002000"},
		{name: "json_parse object", transform: TransformJSONParse, value: `{"a":1}`, want: map[string]any{"a": float64(1)}},
		{name: "json_parse invalid keeps original", transform: TransformJSONParse, value: "not json", want: "not json", wantErr: true},
		{name: "json_parse non-string keeps original", transform: TransformJSONParse, value: 7, want: 7, wantErr: true},
		{name: "to_list wraps scalar", transform: TransformToList, value: "item", want: []any{"item"}},
		{name: "to_list keeps slice", transform: TransformToList, value: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "to_list wraps nil", transform: TransformToList, value: nil, want: []any{nil}},
		{name: "unknown name keeps value", transform: "no_such_transform", value: "kept", want: "kept"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transforms.Apply(tt.value, tt.transform)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransformRegistry_Register(t *testing.T) {
	transforms := NewTransformRegistry()

	assert.Error(t, transforms.Register("", func(v any) any { return v }))
	assert.Error(t, transforms.Register("noop", nil))

	require.NoError(t, transforms.Register("noop", func(v any) any { return v }))
	assert.Error(t, transforms.Register("noop", func(v any) any { return v }))
}

func TestTransformRegistry_RegisterAll(t *testing.T) {
	transforms := NewTransformRegistry()
	require.NoError(t, transforms.RegisterAll(map[string]TransformFunc{
		"first":  func(v any) any { return v },
		"second": func(v any) any { return v },
	}))

	assert.Contains(t, transforms.Names(), "first")
	assert.Contains(t, transforms.Names(), "second")
	assert.Error(t, transforms.RegisterAll(map[string]TransformFunc{"first": func(v any) any { return v }}))
}

func TestTransformRegistry_CustomBeforeBuiltin(t *testing.T) {
	transforms := NewTransformRegistry()
	require.NoError(t, transforms.Register(TransformUppercase, func(v any) any {
		return "shadowed"
	}))

	got, err := transforms.Apply("hello", TransformUppercase)
	assert.NoError(t, err)
	assert.Equal(t, "shadowed", got)
}

func TestTransformRegistry_CustomPanicFallsBack(t *testing.T) {
	transforms := NewTransformRegistry()
	require.NoError(t, transforms.Register("explode", func(v any) any {
		panic("bad transform")
	}))

	got, err := transforms.Apply("original", "explode")
	assert.Error(t, err)
	assert.Equal(t, "original", got)
}

func TestTransformRegistry_Names(t *testing.T) {
	transforms := NewTransformRegistry()
	require.NoError(t, transforms.Register("custom", func(v any) any { return v }))

	names := transforms.Names()
	assert.Contains(t, names, TransformUppercase)
	assert.Contains(t, names, TransformExtractNumbers)
	assert.Contains(t, names, "custom")
	assert.IsIncreasing(t, names)
}
