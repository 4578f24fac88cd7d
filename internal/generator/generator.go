package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/toyz/wired/internal/models"
	"github.com/toyz/wired/internal/templates"
)

// GeneratedFileName is the file written into every annotated package
const GeneratedFileName = "autogen_wired.go"

// Generator renders registration files from package metadata
type Generator struct {
	registry *templates.TemplateRegistry
}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{registry: templates.NewTemplateRegistry()}
}

// GenerateModule renders the registration file for metadata. The result is
// nil when the package declares no classes.
func (g *Generator) GenerateModule(metadata *models.PackageMetadata) (*models.GeneratedModule, error) {
	if !metadata.HasClasses() {
		return nil, nil
	}

	filePath := filepath.Join(metadata.PackagePath, GeneratedFileName)

	source, err := templates.GenerateModule(g.registry, metadata)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    filePath,
			Message: fmt.Sprintf("failed to render package %s", metadata.PackageName),
			Cause:   err,
		}
	}

	formatted, err := imports.Process(filePath, []byte(source), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    filePath,
			Message: fmt.Sprintf("generated code for package %s does not compile: %v", metadata.PackageName, err),
			Cause:   err,
			Suggestions: []string{
				"Check that injected field types and setup method parameters are valid Go types",
			},
		}
	}

	return &models.GeneratedModule{
		PackageName: metadata.PackageName,
		FilePath:    filePath,
		Content:     string(formatted),
		Classes:     len(metadata.Classes),
		Services:    len(metadata.Services),
	}, nil
}

// WriteModule writes a generated file to disk
func (g *Generator) WriteModule(module *models.GeneratedModule) error {
	if err := os.WriteFile(module.FilePath, []byte(module.Content), 0644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    module.FilePath,
			Message: "failed to write generated file",
			Cause:   err,
		}
	}
	return nil
}
