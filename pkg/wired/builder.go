package wired

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AutoServicePrefix prefixes the names of automatically registered services.
const AutoServicePrefix = "_auto."

// Builder collects classes, service descriptors and parameters, and composes
// the injection setup of every service when the container is built.
type Builder struct {
	classes    map[string]*Class
	classOrder []string
	services   map[string]*ServiceDescriptor
	order      []string
	params     map[string]any
	logger     *zap.Logger
	built      bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger used by the builder and the container it builds.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithParameters merges params into the container parameters.
func WithParameters(params map[string]any) Option {
	return func(b *Builder) {
		mergeParameters(b.params, params)
	}
}

// NewBuilder creates an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		classes:  make(map[string]*Class),
		services: make(map[string]*ServiceDescriptor),
		params:   make(map[string]any),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// RegisterClass adds a class. Class names must be unique.
func (b *Builder) RegisterClass(class *Class) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if class == nil {
		return &RegistrationError{Kind: "class", Cause: errors.New("class is nil")}
	}
	if class.Name == "" {
		return &RegistrationError{Kind: "class", Cause: errors.New("class name is empty")}
	}
	if class.New == nil {
		return &RegistrationError{Kind: "class", Name: class.Name, Cause: errors.New("class has no constructor")}
	}
	if _, exists := b.classes[class.Name]; exists {
		return &RegistrationError{Kind: "class", Name: class.Name, Cause: ErrAlreadyRegistered}
	}
	b.classes[class.Name] = class
	b.classOrder = append(b.classOrder, class.Name)
	return nil
}

// RegisterClasses adds every class, stopping at the first error.
func (b *Builder) RegisterClasses(classes ...*Class) error {
	for _, class := range classes {
		if err := b.RegisterClass(class); err != nil {
			return err
		}
	}
	return nil
}

// AddService adds a copy of desc. Service names must be unique; the class is
// checked when the container is built.
func (b *Builder) AddService(desc *ServiceDescriptor) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	if desc == nil || desc.Name == "" {
		return &RegistrationError{Kind: "service", Cause: errors.New("service name is empty")}
	}
	if _, exists := b.services[desc.Name]; exists {
		return &RegistrationError{Kind: "service", Name: desc.Name, Cause: ErrAlreadyRegistered}
	}
	b.services[desc.Name] = desc.Clone()
	b.order = append(b.order, desc.Name)
	return nil
}

// AddServices adds every descriptor, stopping at the first error.
func (b *Builder) AddServices(descs ...*ServiceDescriptor) error {
	for _, desc := range descs {
		if err := b.AddService(desc); err != nil {
			return err
		}
	}
	return nil
}

// Service returns the descriptor registered under name as added, before
// composition. Changing it after Build has no effect on the container.
func (b *Builder) Service(name string) (*ServiceDescriptor, bool) {
	desc, ok := b.services[name]
	return desc, ok
}

// AutoServiceName returns the name given to the automatic registration of class.
func AutoServiceName(class string) string {
	return AutoServicePrefix + strings.NewReplacer("/", "_", ".", "_").Replace(class)
}

// AutoRegister adds a service for every concrete marked class whose name ends
// in "Service" and that no service uses yet. It returns the added names.
// After Build it adds nothing.
func (b *Builder) AutoRegister() []string {
	if b.built {
		return nil
	}
	used := make(map[string]struct{}, len(b.services))
	for _, desc := range b.services {
		used[desc.Class] = struct{}{}
	}

	var added []string
	for _, className := range b.classOrder {
		class := b.classes[className]
		if !class.Marker || class.Abstract || !strings.HasSuffix(class.ShortName(), "Service") {
			continue
		}
		if _, ok := used[className]; ok {
			continue
		}
		name := AutoServiceName(className)
		if _, exists := b.services[name]; exists {
			continue
		}
		b.services[name] = &ServiceDescriptor{Name: name, Class: className}
		b.order = append(b.order, name)
		added = append(added, name)
		b.logger.Debug("auto-registered service", zap.String("service", name), zap.String("class", className))
	}
	return added
}

// SetParameter sets a top-level parameter.
func (b *Builder) SetParameter(key string, value any) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	b.params[key] = value
	return nil
}

// LoadParameters merges the YAML mapping in path into the parameters.
func (b *Builder) LoadParameters(path string) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read parameters %s: %w", path, err)
	}
	return b.LoadParametersYAML(data)
}

// LoadParametersYAML merges a YAML mapping into the parameters.
func (b *Builder) LoadParametersYAML(data []byte) error {
	if b.built {
		return ErrAlreadyBuilt
	}
	var params map[string]any
	if err := yaml.Unmarshal(data, &params); err != nil {
		return fmt.Errorf("failed to parse parameters: %w", err)
	}
	mergeParameters(b.params, params)
	return nil
}

// Build composes the setup sequence of every injectable service, applies the
// inject tag pass and returns the container. Every descriptor is checked
// before any is composed, and composition works on copies: a failed Build
// leaves the builder unchanged. A builder can be built once; afterwards it
// rejects further registrations.
func (b *Builder) Build() (*Container, error) {
	if b.built {
		return nil, ErrAlreadyBuilt
	}
	if err := b.check(); err != nil {
		return nil, err
	}

	services := make(map[string]*ServiceDescriptor, len(b.services))
	for _, name := range b.order {
		desc := b.services[name].Clone()
		services[name] = desc

		class := b.classes[desc.Class]
		if !class.Injectable {
			continue
		}
		plan := PlanCached(class)
		Compose(desc, plan)
		b.logger.Debug("composed injection setup",
			zap.String("service", name),
			zap.Int("injections", plan.Len()),
			zap.Strings("setup", desc.SetupStrings()),
		)
	}

	for _, name := range b.order {
		desc := services[name]
		if !desc.HasTag(TagInject) {
			continue
		}
		ApplyInjectTag(desc, b.classes[desc.Class].InjectMethods())
		b.logger.Debug("applied inject tag", zap.String("service", name), zap.Strings("setup", desc.SetupStrings()))
	}

	classes := make(map[string]*Class, len(b.classes))
	maps.Copy(classes, b.classes)
	params := make(map[string]any, len(b.params))
	mergeParameters(params, b.params)

	b.built = true
	b.logger.Info("container built", zap.Int("services", len(b.order)), zap.Int("classes", len(b.classes)))
	return newContainer(classes, services, slices.Clone(b.order), params, b.logger), nil
}

// check verifies that every service names a registered class and that every
// planned injection of an injectable class has a setter.
func (b *Builder) check() error {
	for _, name := range b.order {
		desc := b.services[name]
		class, ok := b.classes[desc.Class]
		if !ok {
			return &RegistrationError{Kind: "service", Name: name, Cause: fmt.Errorf("%w: %s", ErrClassNotFound, desc.Class)}
		}
		if !class.Injectable {
			continue
		}

		plan := PlanCached(class)
		for _, binding := range append(plan.ByName(), plan.ByType()...) {
			if _, ok := class.Setters[binding.Property]; !ok {
				return &UnknownPropertyError{Class: class.Name, Property: binding.Property}
			}
		}
	}
	return nil
}
