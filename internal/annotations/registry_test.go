package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSchemas(t *testing.T) {
	r := BuiltinSchemas()

	assert.Same(t, r, BuiltinSchemas())
	assert.Equal(t, []AnnotationType{ServiceAnnotation, InjectAnnotation, SetupAnnotation}, r.Kinds())
	for _, kind := range r.Kinds() {
		schema, ok := r.Lookup(kind)
		require.True(t, ok)
		assert.NotEmpty(t, schema.Examples, kind.String())
	}
}

func TestSchemaRegistry_Add(t *testing.T) {
	r, err := NewSchemaRegistry(InjectAnnotationSchema)
	require.NoError(t, err)

	_, ok := r.Lookup(InjectAnnotation)
	assert.True(t, ok)
	_, ok = r.Lookup(SetupAnnotation)
	assert.False(t, ok)

	assert.Error(t, r.Add(InjectAnnotationSchema), "duplicate")
}

func TestSchemaRegistry_RejectsInvalidSchema(t *testing.T) {
	_, err := NewSchemaRegistry(AnnotationSchema{
		Type:          SetupAnnotation,
		MinPositional: 2,
		MaxPositional: 1,
	})
	assert.Error(t, err)

	_, err = NewSchemaRegistry(AnnotationSchema{
		Type:       ServiceAnnotation,
		Parameters: map[string]ParameterSpec{"": {Type: StringType}},
	})
	assert.Error(t, err)

	_, err = NewSchemaRegistry(AnnotationSchema{Type: AnnotationType(42)})
	assert.Error(t, err)
}

func TestAnnotationType_RoundTrip(t *testing.T) {
	for _, name := range []string{"service", "inject", "setup"} {
		annotationType, err := ParseAnnotationType(name)
		require.NoError(t, err)
		assert.Equal(t, name, annotationType.String())
	}

	_, err := ParseAnnotationType("core")
	assert.Error(t, err)
}
