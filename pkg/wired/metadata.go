package wired

import (
	"fmt"
	"reflect"
	"strings"
)

// TypeRef is a type reference as written at the declaration site, e.g. "Storage" or "*db.Conn".
type TypeRef string

// Marker flags a property for injection. A Marker with an empty Name is
// resolved by the property's declared type.
type Marker struct {
	Name string
}

// PropertyMetadata describes one declared property of a class.
type PropertyMetadata struct {
	Name         string
	DeclaredType TypeRef
	Inject       *Marker
}

// Injectable reports whether the property carries an injection marker.
func (p PropertyMetadata) Injectable() bool {
	return p.Inject != nil
}

// TypeResolver maps a type reference, in the scope of the declaring class, to a
// fully-qualified type identifier. It reports false when the reference cannot
// be resolved.
type TypeResolver func(ref TypeRef) (string, bool)

// TypeTable is a precomputed TypeResolver.
type TypeTable map[TypeRef]string

// Resolve looks ref up in the table.
func (t TypeTable) Resolve(ref TypeRef) (string, bool) {
	id, ok := t[ref]
	return id, ok && id != ""
}

// Setter writes value into a property of instance.
type Setter func(instance, value any) error

// Operation runs a named setup operation against instance.
type Operation func(instance any, args []any) error

// Class is the registration record for one concrete type.
type Class struct {
	// Name is the fully-qualified type identifier, e.g. "example.com/app/services.Widget".
	Name       string
	Properties []PropertyMetadata
	Resolve    TypeResolver
	Setters    map[string]Setter
	Operations map[string]Operation
	// Methods lists the operations the class declares, in declaration order.
	Methods []string
	New     func() any

	// Injectable is set when the type embeds Injector.
	Injectable bool
	// Marker is set when the type is eligible for automatic registration.
	Marker   bool
	Abstract bool
}

// ShortName returns the unqualified type name.
func (c *Class) ShortName() string {
	if i := strings.LastIndex(c.Name, "."); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// InjectMethods returns the declared methods picked up by the inject tag pass.
func (c *Class) InjectMethods() []string {
	var methods []string
	for _, m := range c.Methods {
		if isInjectMethod(m) {
			methods = append(methods, m)
		}
	}
	return methods
}

func (c *Class) resolveType(ref TypeRef) (string, bool) {
	if c.Resolve == nil {
		return "", false
	}
	return c.Resolve(ref)
}

func isInjectMethod(name string) bool {
	return strings.HasPrefix(name, "inject") && !IsReservedOperation(name)
}

// IsReservedOperation reports whether name is one of the injection guard operations.
func IsReservedOperation(name string) bool {
	switch name {
	case OpInjectProperty, OpInjectParameters, OpInjectionCompleted:
		return true
	}
	return false
}

// Field adapts a typed assignment into a Setter. A nil value assigns the zero value.
func Field[T any, V any](assign func(T, V)) Setter {
	return func(instance, value any) error {
		target, err := Receiver[T](instance)
		if err != nil {
			return err
		}
		if value == nil {
			var zero V
			assign(target, zero)
			return nil
		}
		v, ok := value.(V)
		if !ok {
			return &TypeMismatchError{Expected: typeName[V](), Actual: fmt.Sprintf("%T", value)}
		}
		assign(target, v)
		return nil
	}
}

// Receiver asserts instance to T.
func Receiver[T any](instance any) (T, error) {
	target, ok := instance.(T)
	if !ok {
		return target, &TypeMismatchError{Expected: typeName[T](), Actual: fmt.Sprintf("%T", instance)}
	}
	return target, nil
}

// ArgAt returns the i-th setup argument as T.
func ArgAt[T any](args []any, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("%w: missing argument #%d", ErrInvalidArguments, i)
	}
	if args[i] == nil {
		return zero, nil
	}
	if v, ok := args[i].(T); ok {
		return v, nil
	}
	// Numbers come from annotations and parameter files as int or float64.
	rv := reflect.ValueOf(args[i])
	target := reflect.TypeFor[T]()
	if isNumeric(rv.Kind()) && isNumeric(target.Kind()) {
		return rv.Convert(target).Interface().(T), nil
	}
	return zero, &TypeMismatchError{Expected: typeName[T](), Actual: fmt.Sprintf("%T", args[i])}
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
