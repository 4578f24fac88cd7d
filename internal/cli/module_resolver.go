package cli

import (
	"path/filepath"

	"github.com/toyz/wired/internal/errors"
	"github.com/toyz/wired/internal/utils"
)

// ModuleResolver determines the import paths of scanned packages
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a resolver reading go.mod through reader
func NewModuleResolver(reader *utils.FileReader) *ModuleResolver {
	return &ModuleResolver{goMod: utils.NewGoModParser(reader)}
}

// ResolveModule returns the module governing dir. A non-empty customModule
// replaces the declared module path; without a go.mod, dir itself is then
// taken as the module root.
func (r *ModuleResolver) ResolveModule(dir, customModule string) (utils.ModuleInfo, error) {
	info, err := r.goMod.FindModule(dir)
	if err != nil {
		if customModule == "" {
			return utils.ModuleInfo{}, errors.ModuleError(dir, err)
		}
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return utils.ModuleInfo{}, errors.WrapFileSystemError("resolve", dir, absErr)
		}
		return utils.ModuleInfo{Path: customModule, Dir: abs}, nil
	}

	if customModule != "" {
		info.Path = customModule
	}
	return info, nil
}

// BuildPackagePath returns the import path of packageDir within module
func (r *ModuleResolver) BuildPackagePath(module utils.ModuleInfo, packageDir string) (string, error) {
	importPath, err := module.ImportPath(packageDir)
	if err != nil {
		return "", errors.ModuleError(packageDir, err)
	}
	return importPath, nil
}
