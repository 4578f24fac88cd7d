package wired

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Operations the injection guard understands.
const (
	OpInjectProperty     = "injectProperty"
	OpInjectParameters   = "injectParameters"
	OpInjectionCompleted = "injectionCompleted"
)

// TagInject marks services whose inject-prefixed methods are added to their setup.
const TagInject = "inject"

// ArgKind tells how a setup argument is resolved.
type ArgKind int

const (
	ValueArg ArgKind = iota
	RefArg
	ContainerRefArg
	ParamArg
)

// Arg is one argument of a setup call.
type Arg struct {
	Kind  ArgKind
	Value any
	// Name is the service reference for RefArg and the dot path for ParamArg.
	Name string
}

// Value is a literal argument.
func Value(v any) Arg { return Arg{Kind: ValueArg, Value: v} }

// Ref references a service by name or by type identifier.
func Ref(id string) Arg { return Arg{Kind: RefArg, Name: id} }

// ContainerArg references the container itself.
func ContainerArg() Arg { return Arg{Kind: ContainerRefArg} }

// Param references a container parameter by dot path.
func Param(path string) Arg { return Arg{Kind: ParamArg, Name: path} }

// ParseArg reads the textual argument notation: "@container", "@name" and
// "%dot.path%". Anything else is a literal string.
func ParseArg(s string) Arg {
	switch {
	case s == "@container":
		return ContainerArg()
	case len(s) > 1 && s[0] == '@':
		return Ref(s[1:])
	case len(s) > 2 && s[0] == '%' && s[len(s)-1] == '%':
		return Param(s[1 : len(s)-1])
	}
	return Value(s)
}

func (a Arg) String() string {
	switch a.Kind {
	case RefArg:
		return "@" + a.Name
	case ContainerRefArg:
		return "@container"
	case ParamArg:
		return "%" + a.Name + "%"
	}
	if s, ok := a.Value.(string); ok {
		return strconv.Quote(s)
	}
	if a.Value == nil {
		return "nil"
	}
	return fmt.Sprintf("%v", a.Value)
}

// SetupCall is one operation invoked on a new instance during construction.
type SetupCall struct {
	Operation string
	Args      []Arg
}

// Call builds a setup call.
func Call(op string, args ...Arg) SetupCall {
	return SetupCall{Operation: op, Args: args}
}

// InjectPropertyCall builds the guarded injection of target into property.
func InjectPropertyCall(property, target string) SetupCall {
	return Call(OpInjectProperty, Value(property), Ref(target))
}

// Identity is the merge key used when generated calls meet author-declared
// ones. injectProperty calls are keyed by their property.
func (c SetupCall) Identity() string {
	if c.Operation == OpInjectProperty && len(c.Args) > 0 && c.Args[0].Kind == ValueArg {
		if property, ok := c.Args[0].Value.(string); ok {
			return c.Operation + "(" + property + ")"
		}
	}
	return c.Operation
}

func (c SetupCall) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Operation + "(" + strings.Join(args, ", ") + ")"
}

func (c SetupCall) clone() SetupCall {
	return SetupCall{Operation: c.Operation, Args: slices.Clone(c.Args)}
}

// ServiceDescriptor is the container's record for one service.
type ServiceDescriptor struct {
	Name  string
	Class string
	Tags  []string
	// Types lists extra type identifiers the service is registered under for by-type lookup.
	Types []string
	Setup []SetupCall
}

// HasTag reports whether the descriptor carries tag.
func (d *ServiceDescriptor) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// SetupStrings renders the setup sequence.
func (d *ServiceDescriptor) SetupStrings() []string {
	out := make([]string, len(d.Setup))
	for i, call := range d.Setup {
		out[i] = call.String()
	}
	return out
}

// Clone returns a deep copy of the descriptor.
func (d *ServiceDescriptor) Clone() *ServiceDescriptor {
	setup := make([]SetupCall, len(d.Setup))
	for i, call := range d.Setup {
		setup[i] = call.clone()
	}
	return &ServiceDescriptor{
		Name:  d.Name,
		Class: d.Class,
		Tags:  slices.Clone(d.Tags),
		Types: slices.Clone(d.Types),
		Setup: setup,
	}
}
