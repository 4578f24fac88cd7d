package parser

import "github.com/toyz/wired/internal/models"

// AnnotationParser extracts class and service metadata from Go packages
type AnnotationParser interface {
	ParseDirectory(dir, importPath string) (*models.PackageMetadata, error)
	ParseSource(filename, source, importPath string) (*models.PackageMetadata, error)
}

var _ AnnotationParser = (*Parser)(nil)
