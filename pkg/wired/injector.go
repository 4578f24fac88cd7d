package wired

import (
	"slices"
	"sync"
)

// Injectable is implemented by types that embed Injector.
type Injectable interface {
	wiredInjector() *Injector
}

// InjectionCompleter is notified once, when injection of an instance completes.
type InjectionCompleter interface {
	OnInjectionCompleted() error
}

// ParameterSource provides the parameter tree handed to injectParameters.
type ParameterSource interface {
	Parameters() map[string]any
}

// Injector is embedded by value into service types to take part in property
// injection. The zero value is ready to use.
//
// An instance accepts injections until InjectionCompleted, after which it is
// completed for good. Every property can be injected once and only before
// completion.
type Injector struct {
	mu        sync.Mutex
	injected  []string
	completed bool
	params    map[string]any
}

func (in *Injector) wiredInjector() *Injector { return in }

// InjectProperty records the injection of name and runs set to store the value.
// A failing set leaves name unrecorded.
func (in *Injector) InjectProperty(name string, set func() error) error {
	in.mu.Lock()
	defer in.mu.Unlock()

	if slices.Contains(in.injected, name) {
		return &DuplicateInjectionError{Property: name}
	}
	if in.completed {
		return &InjectionAfterCompletionError{Property: name}
	}
	if set != nil {
		if err := set(); err != nil {
			return err
		}
	}
	in.injected = append(in.injected, name)
	return nil
}

// InjectParameters stores the parameter tree of src. It may be called again
// and is not affected by completion.
func (in *Injector) InjectParameters(src ParameterSource) {
	var params map[string]any
	if src != nil {
		params = src.Parameters()
	}
	in.mu.Lock()
	in.params = params
	in.mu.Unlock()
}

// InjectionCompleted closes injection. The first call notifies instance if it
// implements InjectionCompleter; later calls do nothing.
func (in *Injector) InjectionCompleted(instance any) error {
	in.mu.Lock()
	if in.completed {
		in.mu.Unlock()
		return nil
	}
	in.completed = true
	in.mu.Unlock()

	if hook, ok := instance.(InjectionCompleter); ok {
		return hook.OnInjectionCompleted()
	}
	return nil
}

// Parameter reads a stored parameter by dot path, returning def when it is absent.
func (in *Injector) Parameter(path string, def any) any {
	in.mu.Lock()
	params := in.params
	in.mu.Unlock()
	return Lookup(params, path, def)
}

// Injected returns the injected property names in injection order.
func (in *Injector) Injected() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return slices.Clone(in.injected)
}

// Completed reports whether injection has completed.
func (in *Injector) Completed() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.completed
}
