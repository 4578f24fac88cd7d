package annotations

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix introduces every annotation comment.
const Prefix = "wired::"

// ParticipleParser represents a parser using alecthomas/participle
type ParticipleParser struct {
	parser  *participle.Parser[annotationAST]
	schemas SchemaSource
}

// annotationAST is the grammar root: //wired::<kind> [values...] [-Flag[=v[,v...]]...]
type annotationAST struct {
	Kind       string      `parser:"'//' Prefix @Ident"`
	Positional []*valueAST `parser:"@@*"`
	Flags      []*flagAST  `parser:"@@*"`
}

type flagAST struct {
	Pos    lexer.Position
	Name   string      `parser:"@Flag"`
	Values []*valueAST `parser:"( '=' @@ ( ',' @@ )* )?"`
}

type valueAST struct {
	String    *string `parser:"  @String"`
	Number    *string `parser:"| @Number"`
	Ref       *string `parser:"| @Ref"`
	Param     *string `parser:"| @Param"`
	Qualified *string `parser:"| @Qualified"`
	Ident     *string `parser:"| @Ident"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//`},
	{Name: "Prefix", Pattern: `wired::`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Param", Pattern: `%[^%\s]+%`},
	{Name: "Ref", Pattern: `@[^\s,=]+`},
	{Name: "Flag", Pattern: `-[a-zA-Z][a-zA-Z0-9_]*`},
	{Name: "Number", Pattern: `-?[0-9]+(\.[0-9]+)?`},
	{Name: "Qualified", Pattern: `\*[a-zA-Z_]\w*(\.[a-zA-Z_]\w*)*|[a-zA-Z_]\w*(\.[a-zA-Z_]\w*)+`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Punct", Pattern: `[=,]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// NewParticipleParser creates a new parser using participle
func NewParticipleParser(schemas SchemaSource) *ParticipleParser {
	parser := participle.MustBuild[annotationAST](
		participle.Lexer(annotationLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)

	return &ParticipleParser{
		parser:  parser,
		schemas: schemas,
	}
}

// IsAnnotation reports whether comment is a wired annotation
func IsAnnotation(comment string) bool {
	content := strings.TrimSpace(comment)
	if !strings.HasPrefix(content, "//") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(content[2:]), Prefix)
}

// ParseAnnotation parses an annotation string
func (p *ParticipleParser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	text := strings.TrimSpace(comment)

	ast, err := p.parser.ParseString(location.File, text)
	if err != nil {
		return nil, p.syntaxError(err, text, location)
	}

	annotationType, err := ParseAnnotationType(ast.Kind)
	if err != nil {
		return nil, &SchemaError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Supported annotations are //wired::service, //wired::inject and //wired::setup",
		}
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]interface{}),
		Location:   location,
		Raw:        text,
	}
	for _, value := range ast.Positional {
		literal, err := value.literal()
		if err != nil {
			return nil, &SyntaxError{Msg: err.Error(), Loc: location, Hint: syntaxSuggestion(text)}
		}
		parsed.Positional = append(parsed.Positional, literal)
	}

	if p.schemas == nil {
		for _, flag := range ast.Flags {
			parsed.Parameters[strings.TrimPrefix(flag.Name, "-")] = flag.rawValue()
		}
		return parsed, nil
	}

	schema, ok := p.schemas.Lookup(annotationType)
	if !ok {
		return nil, &SchemaError{Msg: fmt.Sprintf("no schema for //%s%s", Prefix, annotationType), Loc: location}
	}
	if err := p.applyFlags(parsed, ast.Flags, schema); err != nil {
		return nil, err
	}
	if err := validateAgainstSchema(parsed, schema); err != nil {
		return nil, err
	}
	return parsed, nil
}

// applyFlags converts -Flag values to the parameter types declared by schema
func (p *ParticipleParser) applyFlags(parsed *ParsedAnnotation, flags []*flagAST, schema AnnotationSchema) error {
	for _, flag := range flags {
		name := strings.TrimPrefix(flag.Name, "-")
		loc := parsed.Location
		loc.Column += flag.Pos.Column - 1

		spec, ok := schema.Parameters[name]
		if !ok {
			return &SchemaError{
				Msg:  fmt.Sprintf("unknown parameter '-%s' for %s annotation", name, schema.Type),
				Loc:  loc,
				Hint: validParametersHint(schema),
			}
		}
		if _, dup := parsed.Parameters[name]; dup {
			return &SchemaError{Msg: fmt.Sprintf("parameter '-%s' given more than once", name), Loc: loc}
		}

		values := make([]string, 0, len(flag.Values))
		for _, v := range flag.Values {
			literal, err := v.literal()
			if err != nil {
				return &SyntaxError{Msg: err.Error(), Loc: loc}
			}
			values = append(values, literal.Text)
		}

		switch spec.Type {
		case BoolType:
			if len(values) == 0 {
				parsed.Parameters[name] = true
				continue
			}
			b, err := strconv.ParseBool(strings.Join(values, ","))
			if err != nil {
				return &ValidationError{Parameter: name, Expected: "bool", Actual: strings.Join(values, ","), Loc: loc}
			}
			parsed.Parameters[name] = b
		case StringType:
			if len(values) != 1 {
				return &ValidationError{
					Parameter: name,
					Expected:  "a single value",
					Actual:    fmt.Sprintf("%d values", len(values)),
					Loc:       loc,
					Hint:      fmt.Sprintf("Use -%s=value", name),
				}
			}
			parsed.Parameters[name] = values[0]
		case StringSliceType:
			if len(values) == 0 {
				return &ValidationError{
					Parameter: name,
					Expected:  "a comma-separated list",
					Actual:    "no value",
					Loc:       loc,
					Hint:      fmt.Sprintf("Use -%s=a,b", name),
				}
			}
			parsed.Parameters[name] = values
		}
	}
	return nil
}

func validateAgainstSchema(parsed *ParsedAnnotation, schema AnnotationSchema) error {
	n := len(parsed.Positional)
	if n < schema.MinPositional || (schema.MaxPositional >= 0 && n > schema.MaxPositional) {
		expected := fmt.Sprintf("at least %d", schema.MinPositional)
		if schema.MaxPositional >= 0 {
			expected = fmt.Sprintf("%d to %d", schema.MinPositional, schema.MaxPositional)
		}
		return &SchemaError{
			Msg:  fmt.Sprintf("%s annotation takes %s positional values, got %d", schema.Type, expected, n),
			Loc:  parsed.Location,
			Hint: examplesHint(schema),
		}
	}

	for name, spec := range schema.Parameters {
		value, exists := parsed.Parameters[name]
		if !exists {
			if spec.Required {
				return &ValidationError{Parameter: name, Expected: "a value", Actual: "nothing", Loc: parsed.Location}
			}
			continue
		}
		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				return &ValidationError{
					Parameter: name,
					Expected:  spec.Description,
					Actual:    fmt.Sprintf("%v", value),
					Loc:       parsed.Location,
					Hint:      err.Error(),
				}
			}
		}
	}

	for _, validator := range schema.Validators {
		if err := validator(parsed); err != nil {
			return &SchemaError{Msg: err.Error(), Loc: parsed.Location, Hint: examplesHint(schema)}
		}
	}
	return nil
}

func (p *ParticipleParser) syntaxError(err error, text string, location SourceLocation) error {
	loc := location
	var perr participle.Error
	if errors.As(err, &perr) {
		loc.Column += perr.Position().Column - 1
		return &SyntaxError{Msg: perr.Message(), Loc: loc, Hint: syntaxSuggestion(text)}
	}
	return &SyntaxError{Msg: err.Error(), Loc: loc, Hint: syntaxSuggestion(text)}
}

func (v *valueAST) literal() (Literal, error) {
	switch {
	case v.String != nil:
		s, err := strconv.Unquote(*v.String)
		if err != nil {
			return Literal{}, fmt.Errorf("invalid string %s", *v.String)
		}
		return Literal{Kind: StringLiteral, Text: s}, nil
	case v.Number != nil:
		return Literal{Kind: NumberLiteral, Text: *v.Number}, nil
	case v.Ref != nil:
		return Literal{Kind: RefLiteral, Text: *v.Ref}, nil
	case v.Param != nil:
		return Literal{Kind: ParamLiteral, Text: *v.Param}, nil
	case v.Qualified != nil:
		return Literal{Kind: QualifiedLiteral, Text: *v.Qualified}, nil
	case v.Ident != nil:
		return Literal{Kind: IdentLiteral, Text: *v.Ident}, nil
	}
	return Literal{}, fmt.Errorf("empty value")
}

func (f *flagAST) rawValue() interface{} {
	if len(f.Values) == 0 {
		return true
	}
	values := make([]string, 0, len(f.Values))
	for _, v := range f.Values {
		if literal, err := v.literal(); err == nil {
			values = append(values, literal.Text)
		}
	}
	if len(values) == 1 {
		return values[0]
	}
	return values
}

func validParametersHint(schema AnnotationSchema) string {
	if len(schema.Parameters) == 0 {
		return fmt.Sprintf("%s annotations take no parameters", schema.Type)
	}
	names := make([]string, 0, len(schema.Parameters))
	for name := range schema.Parameters {
		names = append(names, "-"+name)
	}
	sort.Strings(names)
	return "Valid parameters: " + strings.Join(names, ", ")
}

func examplesHint(schema AnnotationSchema) string {
	if len(schema.Examples) == 0 {
		return ""
	}
	return "Example: " + schema.Examples[0]
}
