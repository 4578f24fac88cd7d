package wired

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateInjection = errors.New("property already injected")
	ErrInjectionCompleted = errors.New("injection already completed")
	ErrServiceNotFound    = errors.New("service not found")
	ErrAmbiguousService   = errors.New("ambiguous service")
	ErrCircularDependency = errors.New("circular dependency")
	ErrUnknownOperation   = errors.New("unknown setup operation")
	ErrUnknownProperty    = errors.New("unknown property")
	ErrTypeMismatch       = errors.New("type mismatch")
	ErrMissingParameter   = errors.New("missing parameter")
	ErrInvalidArguments   = errors.New("invalid setup arguments")
	ErrNotInjectable      = errors.New("instance does not embed wired.Injector")
	ErrClassNotFound      = errors.New("class not registered")
	ErrAlreadyRegistered  = errors.New("already registered")
	ErrAlreadyBuilt       = errors.New("builder already built")
	ErrNilInstance        = errors.New("constructor returned nil")
)

var (
	_ error = (*DuplicateInjectionError)(nil)
	_ error = (*InjectionAfterCompletionError)(nil)
	_ error = (*ServiceNotFoundError)(nil)
	_ error = (*AmbiguousServiceError)(nil)
	_ error = (*CircularDependencyError)(nil)
	_ error = (*SetupError)(nil)
	_ error = (*UnknownOperationError)(nil)
	_ error = (*UnknownPropertyError)(nil)
	_ error = (*TypeMismatchError)(nil)
	_ error = (*MissingParameterError)(nil)
	_ error = (*RegistrationError)(nil)
)

// DuplicateInjectionError is returned when a property is injected twice.
type DuplicateInjectionError struct {
	Property string
}

func (e *DuplicateInjectionError) Error() string {
	return fmt.Sprintf("error when injecting property %q: injection was done already", e.Property)
}

func (e *DuplicateInjectionError) Unwrap() error { return ErrDuplicateInjection }

// InjectionAfterCompletionError is returned when a property is injected after injectionCompleted.
type InjectionAfterCompletionError struct {
	Property string
}

func (e *InjectionAfterCompletionError) Error() string {
	return fmt.Sprintf("cannot inject property %q: injection process was completed before", e.Property)
}

func (e *InjectionAfterCompletionError) Unwrap() error { return ErrInjectionCompleted }

// ServiceNotFoundError is returned when no service matches a name or type.
type ServiceNotFoundError struct {
	Name string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service %q not found", e.Name)
}

func (e *ServiceNotFoundError) Unwrap() error { return ErrServiceNotFound }

// AmbiguousServiceError is returned when a type reference matches more than one service.
type AmbiguousServiceError struct {
	Type       string
	Candidates []string
}

func (e *AmbiguousServiceError) Error() string {
	return fmt.Sprintf("multiple services of type %s found: %s", e.Type, strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousServiceError) Unwrap() error { return ErrAmbiguousService }

// CircularDependencyError is returned when a service is needed again while it is
// being constructed. Chain lists the services under construction.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return "circular reference detected: " + strings.Join(e.Chain, " -> ")
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }

// SetupError wraps a failure of one setup call during service construction.
type SetupError struct {
	Service   string
	Operation string
	Index     int
	Cause     error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("service %q: setup call #%d %s failed: %v", e.Service, e.Index, e.Operation, e.Cause)
}

func (e *SetupError) Unwrap() error { return e.Cause }

// UnknownOperationError is returned for a setup call the class has no operation for.
type UnknownOperationError struct {
	Class     string
	Operation string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("class %s has no setup operation %q", e.Class, e.Operation)
}

func (e *UnknownOperationError) Unwrap() error { return ErrUnknownOperation }

// UnknownPropertyError is returned when an injection names a property without a setter.
type UnknownPropertyError struct {
	Class    string
	Property string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("class %s has no injectable property %q", e.Class, e.Property)
}

func (e *UnknownPropertyError) Unwrap() error { return ErrUnknownProperty }

// TypeMismatchError is returned when an instance or argument has the wrong type.
type TypeMismatchError struct {
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// MissingParameterError is returned for a %param% argument that is not set.
type MissingParameterError struct {
	Path string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %q is not defined", e.Path)
}

func (e *MissingParameterError) Unwrap() error { return ErrMissingParameter }

// RegistrationError is returned by the Builder for invalid classes and services.
type RegistrationError struct {
	Kind  string
	Name  string
	Cause error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.Cause)
}

func (e *RegistrationError) Unwrap() error { return e.Cause }
