package parser

import (
	"errors"
	"fmt"

	"github.com/toyz/wired/internal/annotations"
	"github.com/toyz/wired/internal/models"
)

// ErrorReporter turns parse problems into located generator errors
type ErrorReporter struct{}

// NewErrorReporter creates an error reporter
func NewErrorReporter() *ErrorReporter {
	return &ErrorReporter{}
}

// Annotation wraps an annotation parse failure
func (r *ErrorReporter) Annotation(err error, fileName string, line int) error {
	genErr := &models.GeneratorError{
		Type:    models.ErrorTypeAnnotationSyntax,
		File:    fileName,
		Line:    line,
		Message: err.Error(),
		Cause:   err,
	}

	var annErr annotations.AnnotationError
	if errors.As(err, &annErr) {
		if annErr.Code() != annotations.SyntaxErrorCode {
			genErr.Type = models.ErrorTypeValidation
		}
		if hint := annErr.Suggestion(); hint != "" {
			genErr.Suggestions = append(genErr.Suggestions, hint)
		}
	}
	return genErr
}

// Validation reports a structural problem with annotated code
func (r *ErrorReporter) Validation(fileName string, line int, message string, suggestions ...string) error {
	return &models.GeneratorError{
		Type:        models.ErrorTypeValidation,
		File:        fileName,
		Line:        line,
		Message:     message,
		Suggestions: suggestions,
	}
}

// UnresolvedType reports a type expression that cannot be mapped to a type identifier
func (r *ErrorReporter) UnresolvedType(fileName string, line int, owner, typeExpr string) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeTypeResolution,
		File:    fileName,
		Line:    line,
		Message: fmt.Sprintf("cannot resolve type %s of %s", typeExpr, owner),
		Suggestions: []string{
			"Import the package declaring the type in this file",
			"Use a named type; literal map, slice and func types cannot be injected by type",
		},
	}
}

// DuplicateService reports two structs registering the same service name
func (r *ErrorReporter) DuplicateService(name string, first, second models.ServiceMetadata) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeValidation,
		File:    second.FileName,
		Line:    second.Line,
		Message: fmt.Sprintf("service %q is already declared by %s at %s:%d", name, first.StructName, first.FileName, first.Line),
		Suggestions: []string{
			"Service names must be unique within a package",
		},
	}
}
