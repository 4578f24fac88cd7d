package wired

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Container builds services from frozen descriptors. Every service is a
// singleton created on first request.
//
// Setup calls receive the container as @container. While that construction
// runs, the container they receive resolves services without waiting on the
// lock its caller holds, so setup operations may call Get, GetByType,
// Describe and InstantiateAll.
type Container struct {
	*containerState

	// held is set on the view handed to setup calls while the construction
	// that created it owns the lock.
	held *atomic.Bool
}

type containerState struct {
	id       string
	classes  map[string]*Class
	services map[string]*ServiceDescriptor
	order    []string
	byType   map[string][]string
	params   map[string]any
	logger   *zap.Logger

	mu        sync.Mutex
	instances map[string]any
	building  []string
}

// ServiceInfo is a read-only view of a service for introspection.
type ServiceInfo struct {
	Name         string   `json:"name"`
	Class        string   `json:"class"`
	Tags         []string `json:"tags,omitempty"`
	Types        []string `json:"types,omitempty"`
	Setup        []string `json:"setup"`
	Instantiated bool     `json:"instantiated"`
}

// newContainer takes ownership of its arguments. The builder passes copies.
func newContainer(classes map[string]*Class, services map[string]*ServiceDescriptor, order []string, params map[string]any, logger *zap.Logger) *Container {
	state := &containerState{
		id:        uuid.NewString(),
		classes:   classes,
		services:  services,
		order:     order,
		byType:    make(map[string][]string),
		params:    params,
		logger:    logger,
		instances: make(map[string]any),
	}
	for _, name := range order {
		desc := services[name]
		state.byType[desc.Class] = append(state.byType[desc.Class], name)
		for _, typeID := range desc.Types {
			if typeID != desc.Class && !slices.Contains(state.byType[typeID], name) {
				state.byType[typeID] = append(state.byType[typeID], name)
			}
		}
	}
	state.logger = state.logger.With(zap.String("container", state.id))
	return &Container{containerState: state}
}

// enter locks the container unless c is the view of a running construction.
// It returns the container to resolve through and the matching release.
func (c *Container) enter() (*Container, func()) {
	if c.held != nil && c.held.Load() {
		return c, func() {}
	}
	c.mu.Lock()
	view := &Container{containerState: c.containerState, held: new(atomic.Bool)}
	view.held.Store(true)
	return view, func() {
		view.held.Store(false)
		c.mu.Unlock()
	}
}

// ID identifies the container instance in logs.
func (c *Container) ID() string {
	return c.id
}

// Parameters returns the parameter tree. Callers must not modify it.
func (c *Container) Parameters() map[string]any {
	return c.params
}

// Parameter reads a parameter by dot path.
func (c *Container) Parameter(path string, def any) any {
	return Lookup(c.params, path, def)
}

// Has reports whether a service is registered under name.
func (c *Container) Has(name string) bool {
	_, ok := c.services[name]
	return ok
}

// Services returns the service names in registration order.
func (c *Container) Services() []string {
	return slices.Clone(c.order)
}

// Descriptor returns a copy of the frozen descriptor of name.
func (c *Container) Descriptor(name string) (*ServiceDescriptor, bool) {
	desc, ok := c.services[name]
	if !ok {
		return nil, false
	}
	return desc.Clone(), true
}

// Describe lists every service in registration order.
func (c *Container) Describe() []ServiceInfo {
	_, leave := c.enter()
	defer leave()

	infos := make([]ServiceInfo, 0, len(c.order))
	for _, name := range c.order {
		infos = append(infos, c.info(name))
	}
	return infos
}

// DescribeService returns the view of a single service.
func (c *Container) DescribeService(name string) (ServiceInfo, bool) {
	if !c.Has(name) {
		return ServiceInfo{}, false
	}
	_, leave := c.enter()
	defer leave()
	return c.info(name), true
}

func (c *Container) info(name string) ServiceInfo {
	desc := c.services[name]
	_, instantiated := c.instances[name]
	return ServiceInfo{
		Name:         desc.Name,
		Class:        desc.Class,
		Tags:         slices.Clone(desc.Tags),
		Types:        slices.Clone(desc.Types),
		Setup:        desc.SetupStrings(),
		Instantiated: instantiated,
	}
}

// Get returns the service registered under name, creating it on first use.
func (c *Container) Get(name string) (any, error) {
	view, leave := c.enter()
	defer leave()
	return view.get(name)
}

// GetByType returns the single service registered under typeID.
func (c *Container) GetByType(typeID string) (any, error) {
	view, leave := c.enter()
	defer leave()
	return view.getByType(typeID)
}

// MustGet is Get that panics on error.
func (c *Container) MustGet(name string) any {
	instance, err := c.Get(name)
	if err != nil {
		panic(err)
	}
	return instance
}

// InstantiateAll creates every non-instantiated service in registration order.
func (c *Container) InstantiateAll() error {
	view, leave := c.enter()
	defer leave()
	for _, name := range c.order {
		if _, err := view.get(name); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the service registered under name as T.
func Resolve[T any](c *Container, name string) (T, error) {
	instance, err := c.Get(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return Receiver[T](instance)
}

func (c *Container) get(name string) (any, error) {
	if instance, ok := c.instances[name]; ok {
		return instance, nil
	}
	desc, ok := c.services[name]
	if !ok {
		return nil, &ServiceNotFoundError{Name: name}
	}
	if slices.Contains(c.building, name) {
		chain := append(slices.Clone(c.building), name)
		return nil, &CircularDependencyError{Chain: chain}
	}

	c.building = append(c.building, name)
	defer func() { c.building = c.building[:len(c.building)-1] }()

	class := c.classes[desc.Class]
	instance := class.New()
	if instance == nil {
		return nil, &SetupError{Service: name, Operation: "new", Index: -1, Cause: ErrNilInstance}
	}

	for i, call := range desc.Setup {
		if err := c.invoke(class, instance, call); err != nil {
			c.logger.Error("service construction aborted",
				zap.String("service", name),
				zap.String("operation", call.Operation),
				zap.Int("index", i),
				zap.Error(err),
			)
			return nil, &SetupError{Service: name, Operation: call.String(), Index: i, Cause: err}
		}
	}

	c.instances[name] = instance
	c.logger.Debug("service created", zap.String("service", name), zap.String("class", desc.Class))
	return instance, nil
}

func (c *Container) getByType(typeID string) (any, error) {
	names := c.byType[typeID]
	switch len(names) {
	case 0:
		return nil, &ServiceNotFoundError{Name: typeID}
	case 1:
		return c.get(names[0])
	}
	return nil, &AmbiguousServiceError{Type: typeID, Candidates: slices.Clone(names)}
}

// resolveRef looks id up as a service name first, then as a type identifier.
func (c *Container) resolveRef(id string) (any, error) {
	if id == "container" {
		return c, nil
	}
	if _, ok := c.services[id]; ok {
		return c.get(id)
	}
	return c.getByType(id)
}

func (c *Container) resolveArgs(args []Arg) ([]any, error) {
	values := make([]any, len(args))
	for i, arg := range args {
		switch arg.Kind {
		case ValueArg:
			values[i] = arg.Value
		case ContainerRefArg:
			values[i] = c
		case RefArg:
			v, err := c.resolveRef(arg.Name)
			if err != nil {
				return nil, err
			}
			values[i] = v
		case ParamArg:
			v := Lookup(c.params, arg.Name, missingParameter)
			if v == missingParameter {
				return nil, &MissingParameterError{Path: arg.Name}
			}
			values[i] = v
		default:
			return nil, fmt.Errorf("%w: unknown argument kind %d", ErrInvalidArguments, arg.Kind)
		}
	}
	return values, nil
}

type missingParameterMarker struct{}

var missingParameter any = &missingParameterMarker{}

func (c *Container) invoke(class *Class, instance any, call SetupCall) error {
	args, err := c.resolveArgs(call.Args)
	if err != nil {
		return err
	}

	switch call.Operation {
	case OpInjectProperty:
		injector, err := injectorOf(instance)
		if err != nil {
			return err
		}
		if len(args) != 2 {
			return fmt.Errorf("%w: %s expects 2 arguments, got %d", ErrInvalidArguments, call.Operation, len(args))
		}
		property, ok := args[0].(string)
		if !ok {
			return &TypeMismatchError{Expected: "string", Actual: fmt.Sprintf("%T", args[0])}
		}
		setter, ok := class.Setters[property]
		if !ok {
			return &UnknownPropertyError{Class: class.Name, Property: property}
		}
		return injector.InjectProperty(property, func() error {
			return setter(instance, args[1])
		})

	case OpInjectParameters:
		injector, err := injectorOf(instance)
		if err != nil {
			return err
		}
		if len(args) != 1 {
			return fmt.Errorf("%w: %s expects 1 argument, got %d", ErrInvalidArguments, call.Operation, len(args))
		}
		src, ok := args[0].(ParameterSource)
		if !ok {
			return &TypeMismatchError{Expected: "wired.ParameterSource", Actual: fmt.Sprintf("%T", args[0])}
		}
		injector.InjectParameters(src)
		return nil

	case OpInjectionCompleted:
		injector, err := injectorOf(instance)
		if err != nil {
			return err
		}
		return injector.InjectionCompleted(instance)
	}

	op, ok := class.Operations[call.Operation]
	if !ok {
		return &UnknownOperationError{Class: class.Name, Operation: call.Operation}
	}
	return op(instance, args)
}

func injectorOf(instance any) (*Injector, error) {
	injectable, ok := instance.(Injectable)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotInjectable, instance)
	}
	return injectable.wiredInjector(), nil
}
