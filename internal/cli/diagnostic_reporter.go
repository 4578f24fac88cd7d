package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/wired/internal/errors"
	"github.com/toyz/wired/internal/models"
)

// DiagnosticReporter prints failures with their location and hints
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: os.Stderr}
}

// SetOutput redirects the reporter
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning prints a single warning line
func (r *DiagnosticReporter) ReportWarning(message string) {
	color.New(color.FgYellow, color.Bold).Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError prints err with everything known about it
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	var genErr *models.GeneratorError
	var wiredErr errors.WiredError
	switch {
	case stderrors.As(err, &genErr):
		r.reportGeneratorError(genErr)
	case stderrors.As(err, &wiredErr):
		r.reportWiredError(wiredErr)
	default:
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
	}
	fmt.Fprintln(r.out)
}

func (r *DiagnosticReporter) reportGeneratorError(genErr *models.GeneratorError) {
	r.header(errorTitle(genErr.Type))
	fmt.Fprintf(r.out, "Message: %s\n\n", genErr.Message)

	if genErr.File != "" {
		if genErr.Line > 0 {
			fmt.Fprintf(r.out, "Location: %s:%d\n\n", genErr.File, genErr.Line)
		} else {
			fmt.Fprintf(r.out, "File: %s\n\n", genErr.File)
		}
	}
	if r.verbose && genErr.Cause != nil {
		fmt.Fprintf(r.out, "Underlying cause: %s\n\n", genErr.Cause)
	}
	r.suggestions(genErr.Suggestions)
}

func (r *DiagnosticReporter) reportWiredError(err errors.WiredError) {
	r.header(splitCamel(err.ErrorCode().String()))
	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if ctx := err.Context(); len(ctx) > 0 && r.verbose {
		fmt.Fprintf(r.out, "Context:\n")
		if base, ok := err.(*errors.BaseError); ok {
			for _, key := range base.ContextKeys() {
				fmt.Fprintf(r.out, "   %s: %v\n", key, ctx[key])
			}
		}
		fmt.Fprintln(r.out)
	}
	r.suggestions(err.Suggestions())
}

func (r *DiagnosticReporter) header(title string) {
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

func (r *DiagnosticReporter) suggestions(hints []string) {
	if len(hints) == 0 {
		return
	}
	fmt.Fprintf(r.out, "Suggestions:\n")
	for _, hint := range hints {
		fmt.Fprintf(r.out, "   - %s\n", hint)
	}
}

func errorTitle(t models.ErrorType) string {
	switch t {
	case models.ErrorTypeAnnotationSyntax:
		return "Annotation Syntax Error"
	case models.ErrorTypeValidation:
		return "Validation Error"
	case models.ErrorTypeTypeResolution:
		return "Type Resolution Error"
	case models.ErrorTypeGeneration:
		return "Code Generation Error"
	case models.ErrorTypeFileSystem:
		return "File System Error"
	}
	return "Unknown Error"
}

// splitCamel turns "FileSystemError" into "File System Error"
func splitCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
