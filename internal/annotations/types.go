package annotations

import (
	"fmt"
	"strconv"

	"github.com/toyz/wired/pkg/wired"
)

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	ServiceAnnotation AnnotationType = iota
	InjectAnnotation
	SetupAnnotation
)

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	switch a {
	case ServiceAnnotation:
		return "service"
	case InjectAnnotation:
		return "inject"
	case SetupAnnotation:
		return "setup"
	default:
		return "unknown"
	}
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	switch s {
	case "service":
		return ServiceAnnotation, nil
	case "inject":
		return InjectAnnotation, nil
	case "setup":
		return SetupAnnotation, nil
	default:
		return 0, fmt.Errorf("unknown annotation type: %s", s)
	}
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// LiteralKind classifies a positional annotation value
type LiteralKind int

const (
	StringLiteral LiteralKind = iota
	NumberLiteral
	IdentLiteral
	QualifiedLiteral
	RefLiteral
	ParamLiteral
)

// Literal is one positional value as written in the annotation.
// Text holds string literals unquoted and everything else verbatim.
type Literal struct {
	Kind LiteralKind
	Text string
}

// Arg converts the literal into a setup call argument.
func (l Literal) Arg() wired.Arg {
	switch l.Kind {
	case RefLiteral, ParamLiteral:
		return wired.ParseArg(l.Text)
	case NumberLiteral:
		if n, err := strconv.Atoi(l.Text); err == nil {
			return wired.Value(n)
		}
		if f, err := strconv.ParseFloat(l.Text, 64); err == nil {
			return wired.Value(f)
		}
	case IdentLiteral:
		switch l.Text {
		case "true":
			return wired.Value(true)
		case "false":
			return wired.Value(false)
		case "nil":
			return wired.Value(nil)
		}
	}
	return wired.Value(l.Text)
}

// ParsedAnnotation represents a fully parsed annotation with type-safe parameters
type ParsedAnnotation struct {
	Type       AnnotationType         // Annotation type enum
	Positional []Literal              // Values before the first flag
	Parameters map[string]interface{} // Typed -Flag parameters
	Location   SourceLocation         // Source location
	Raw        string                 // Original annotation text
}

// Param returns the -name flag of a as T, or def when the flag is absent
// or holds another type.
func Param[T any](a *ParsedAnnotation, name string, def T) T {
	if v, ok := a.Parameters[name].(T); ok {
		return v
	}
	return def
}

// Has reports whether the -name flag was given
func (p *ParsedAnnotation) Has(name string) bool {
	_, ok := p.Parameters[name]
	return ok
}

// PositionalText returns the text of the i-th positional value, or "".
func (p *ParsedAnnotation) PositionalText(i int) string {
	if i < 0 || i >= len(p.Positional) {
		return ""
	}
	return p.Positional[i].Text
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type        ParameterType           // Parameter type
	Required    bool                    // Whether parameter is required
	Description string                  // Parameter description
	Validator   func(interface{}) error // Custom validator function
}

// CustomValidator represents a custom validation function for annotations
type CustomValidator func(*ParsedAnnotation) error

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type          AnnotationType           // Annotation type enum
	Description   string                   // Human-readable description
	Parameters    map[string]ParameterSpec // Parameter specifications
	MinPositional int
	MaxPositional int // -1 for unlimited
	Validators    []CustomValidator
	Examples      []string
}
