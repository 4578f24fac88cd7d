package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/toyz/wired/internal/utils"
)

// ImportManager collects the imports of a generated file
type ImportManager struct {
	imports map[string]string // path -> alias
}

// NewImportManager creates an empty import manager
func NewImportManager() *ImportManager {
	return &ImportManager{imports: make(map[string]string)}
}

// Add records importPath under alias. The alias is dropped from the
// rendered block when it matches the package's assumed name.
func (im *ImportManager) Add(alias, importPath string) error {
	if importPath == "" {
		return nil
	}
	if alias == "" {
		alias = utils.AssumedPackageName(importPath)
	}
	if existing, ok := im.imports[importPath]; ok && existing != alias {
		return fmt.Errorf("import %s used as both %s and %s", importPath, existing, alias)
	}
	for path, a := range im.imports {
		if a == alias && path != importPath {
			return fmt.Errorf("package name %s refers to both %s and %s", alias, path, importPath)
		}
	}
	im.imports[importPath] = alias
	return nil
}

// AddAll records every alias -> path pair
func (im *ImportManager) AddAll(imports map[string]string) error {
	aliases := make([]string, 0, len(imports))
	for alias := range imports {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)

	for _, alias := range aliases {
		if err := im.Add(alias, imports[alias]); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of distinct imports
func (im *ImportManager) Len() int {
	return len(im.imports)
}

// GenerateImports renders the import block, standard library first
func (im *ImportManager) GenerateImports() string {
	if len(im.imports) == 0 {
		return ""
	}

	var std, external []string
	for importPath, alias := range im.imports {
		line := strconv.Quote(importPath)
		if alias != utils.AssumedPackageName(importPath) {
			line = alias + " " + line
		}
		if isStandardLibrary(importPath) {
			std = append(std, line)
		} else {
			external = append(external, line)
		}
	}
	sort.Slice(std, func(i, j int) bool { return unaliased(std[i]) < unaliased(std[j]) })
	sort.Slice(external, func(i, j int) bool { return unaliased(external[i]) < unaliased(external[j]) })

	var b strings.Builder
	b.WriteString("import (\n")
	for _, line := range std {
		fmt.Fprintf(&b, "\t%s\n", line)
	}
	if len(std) > 0 && len(external) > 0 {
		b.WriteString("\n")
	}
	for _, line := range external {
		fmt.Fprintf(&b, "\t%s\n", line)
	}
	b.WriteString(")\n")
	return b.String()
}

func unaliased(line string) string {
	if i := strings.IndexByte(line, '"'); i >= 0 {
		return line[i:]
	}
	return line
}

// isStandardLibrary treats paths without a dot in the first element as std
func isStandardLibrary(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
