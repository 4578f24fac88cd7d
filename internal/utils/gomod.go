package utils

import (
	"fmt"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// ModuleInfo describes the module a directory belongs to
type ModuleInfo struct {
	Path      string // module path declared in go.mod
	Dir       string // directory holding go.mod
	GoVersion string
}

// ImportPath returns the import path of dir, which must lie inside the module
func (m ModuleInfo) ImportPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(m.Dir, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return m.Path, nil
	}
	if rel == ".." || len(rel) > 2 && rel[:3] == "../" {
		return "", fmt.Errorf("%s is outside module %s", dir, m.Path)
	}

	importPath := m.Path + "/" + rel
	if err := module.CheckImportPath(importPath); err != nil {
		return "", err
	}
	return importPath, nil
}

// GoModParser reads go.mod files through a FileReader
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a new go.mod parser
func NewGoModParser(fileReader *FileReader) *GoModParser {
	return &GoModParser{fileReader: fileReader}
}

// Parse reads the go.mod at goModPath
func (p *GoModParser) Parse(goModPath string) (ModuleInfo, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return ModuleInfo{}, fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	content, err := p.fileReader.ReadFile(cleanPath)
	if err != nil {
		return ModuleInfo{}, wrapf("load", "go.mod", err)
	}

	modFile, err := modfile.ParseLax(cleanPath, []byte(content), nil)
	if err != nil {
		return ModuleInfo{}, wrapf("parse", "go.mod", err)
	}
	if modFile.Module == nil {
		return ModuleInfo{}, fmt.Errorf("no module declaration found in %s", cleanPath)
	}

	dir, err := filepath.Abs(filepath.Dir(cleanPath))
	if err != nil {
		return ModuleInfo{}, err
	}

	info := ModuleInfo{Path: modFile.Module.Mod.Path, Dir: dir}
	if modFile.Go != nil {
		info.GoVersion = modFile.Go.Version
	}
	return info, nil
}

// FindGoModFile walks up from startDir to the nearest go.mod
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, "go.mod")
		if _, err := p.fileReader.ReadFile(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod file not found above %s", startDir)
		}
		dir = parent
	}
}

// FindModule locates and parses the go.mod governing startDir
func (p *GoModParser) FindModule(startDir string) (ModuleInfo, error) {
	path, err := p.FindGoModFile(startDir)
	if err != nil {
		return ModuleInfo{}, err
	}
	return p.Parse(path)
}
