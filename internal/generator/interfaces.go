package generator

import "github.com/toyz/wired/internal/models"

// CodeGenerator renders the registration file of an annotated package
type CodeGenerator interface {
	GenerateModule(metadata *models.PackageMetadata) (*models.GeneratedModule, error)
	WriteModule(module *models.GeneratedModule) error
}

var _ CodeGenerator = (*Generator)(nil)
