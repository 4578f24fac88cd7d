package annotations

import (
	"fmt"
	"strings"
)

// Built-in annotation schemas

// ServiceAnnotationSchema defines the schema for //wired::service annotations
var ServiceAnnotationSchema = AnnotationSchema{
	Type:        ServiceAnnotation,
	Description: "Marks a struct as a container class and optionally registers a named service",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Description: "Service name; without it the class is only eligible for automatic registration",
			Validator:   validateServiceName,
		},
		"Tag": {
			Type:        StringSliceType,
			Description: "Service tags, e.g. inject",
		},
		"As": {
			Type:        StringSliceType,
			Description: "Additional types the service can be injected as",
		},
		"Abstract": {
			Type:        BoolType,
			Description: "Excludes the class from automatic registration",
		},
	},
	MaxPositional: 0,
	Validators: []CustomValidator{
		func(a *ParsedAnnotation) error {
			if Param(a, "Abstract", false) && a.Has("Name") {
				return fmt.Errorf("abstract classes cannot be registered as services")
			}
			return nil
		},
	},
	Examples: []string{
		"//wired::service",
		"//wired::service -Name=widget",
		"//wired::service -Name=widget -Tag=inject",
		"//wired::service -Name=store -As=Storage,io.Closer",
		"//wired::service -Abstract",
	},
}

// InjectAnnotationSchema defines the schema for //wired::inject field annotations
var InjectAnnotationSchema = AnnotationSchema{
	Type:        InjectAnnotation,
	Description: "Marks a field to be filled by the container, by service name or by declared type",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Description: "Service name to inject",
			Validator:   validateServiceName,
		},
	},
	MaxPositional: 1,
	Validators: []CustomValidator{
		func(a *ParsedAnnotation) error {
			if len(a.Positional) > 0 && a.Has("Name") {
				return fmt.Errorf("service name given both positionally and with -Name")
			}
			if len(a.Positional) > 0 {
				switch a.Positional[0].Kind {
				case IdentLiteral, QualifiedLiteral, StringLiteral:
				default:
					return fmt.Errorf("service name must be an identifier or a string, got %q", a.Positional[0].Text)
				}
			}
			return nil
		},
	},
	Examples: []string{
		"//wired::inject",
		"//wired::inject log",
		"//wired::inject cache.redis",
		"//wired::inject -Name=log",
	},
}

// SetupAnnotationSchema defines the schema for //wired::setup annotations
var SetupAnnotationSchema = AnnotationSchema{
	Type:          SetupAnnotation,
	Description:   "Adds a setup call to the service declared on the same struct",
	Parameters:    map[string]ParameterSpec{},
	MinPositional: 1,
	MaxPositional: -1,
	Validators: []CustomValidator{
		func(a *ParsedAnnotation) error {
			if a.Positional[0].Kind != IdentLiteral {
				return fmt.Errorf("setup operation must be a method name, got %q", a.Positional[0].Text)
			}
			return nil
		},
	},
	Examples: []string{
		"//wired::setup Warmup 3",
		`//wired::setup Configure "eu-west" %app.limits.max%`,
		`//wired::setup injectProperty "store" @backup`,
	},
}

func validateServiceName(v interface{}) error {
	name, _ := v.(string)
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if strings.ContainsAny(name, " \t") {
		return fmt.Errorf("service name cannot contain whitespace")
	}
	if strings.HasPrefix(name, "@") {
		return fmt.Errorf("service name must not start with '@'")
	}
	return nil
}
