package annotations

import (
	"fmt"
	"slices"
	"sync"
)

// SchemaSource looks up the schema of an annotation kind
type SchemaSource interface {
	Lookup(annotationType AnnotationType) (AnnotationSchema, bool)
}

// SchemaRegistry holds the schema of every annotation kind the parser accepts
type SchemaRegistry struct {
	mu      sync.RWMutex
	schemas map[AnnotationType]AnnotationSchema
}

var _ SchemaSource = (*SchemaRegistry)(nil)

// NewSchemaRegistry creates a registry holding schemas
func NewSchemaRegistry(schemas ...AnnotationSchema) (*SchemaRegistry, error) {
	r := &SchemaRegistry{schemas: make(map[AnnotationType]AnnotationSchema, len(schemas))}
	for _, schema := range schemas {
		if err := r.Add(schema); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// BuiltinSchemas returns the shared registry of service, inject and setup schemas
var BuiltinSchemas = sync.OnceValue(func() *SchemaRegistry {
	r, err := NewSchemaRegistry(ServiceAnnotationSchema, InjectAnnotationSchema, SetupAnnotationSchema)
	if err != nil {
		panic(fmt.Sprintf("wired: invalid built-in annotation schema: %v", err))
	}
	return r
})

// Add registers schema under its own kind. A kind can be added once.
func (r *SchemaRegistry) Add(schema AnnotationSchema) error {
	if err := checkSchema(schema); err != nil {
		return fmt.Errorf("invalid %s schema: %w", schema.Type, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.schemas[schema.Type]; exists {
		return fmt.Errorf("//%s%s already has a schema", Prefix, schema.Type)
	}
	r.schemas[schema.Type] = schema
	return nil
}

// Lookup returns the schema of annotationType
func (r *SchemaRegistry) Lookup(annotationType AnnotationType) (AnnotationSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.schemas[annotationType]
	return schema, ok
}

// Kinds returns the registered kinds in declaration order
func (r *SchemaRegistry) Kinds() []AnnotationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]AnnotationType, 0, len(r.schemas))
	for kind := range r.schemas {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

func checkSchema(schema AnnotationSchema) error {
	if _, err := ParseAnnotationType(schema.Type.String()); err != nil {
		return err
	}
	for name, param := range schema.Parameters {
		if name == "" {
			return fmt.Errorf("empty parameter name")
		}
		if param.Type < StringType || param.Type > StringSliceType {
			return fmt.Errorf("parameter %s has unknown type %d", name, param.Type)
		}
	}
	if schema.MaxPositional >= 0 && schema.MaxPositional < schema.MinPositional {
		return fmt.Errorf("max positional %d is below min positional %d", schema.MaxPositional, schema.MinPositional)
	}
	return nil
}
