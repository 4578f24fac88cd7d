package parser

import (
	"fmt"
	"go/ast"
	"go/types"
	"strconv"

	"github.com/toyz/wired/internal/utils"
)

// fileScope resolves type expressions written in one source file
type fileScope struct {
	importPath string
	imports    map[string]string // alias -> import path
}

func newFileScope(file *ast.File, importPath string) *fileScope {
	scope := &fileScope{
		importPath: importPath,
		imports:    make(map[string]string),
	}
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		alias := utils.AssumedPackageName(importPath)
		if spec.Name != nil {
			alias = spec.Name.Name
		}
		if alias == "_" || alias == "." {
			continue
		}
		scope.imports[alias] = importPath
	}
	return scope
}

// resolve returns the type identifier of expr. An empty identifier with a
// nil error means the expression has no identifier (literal composite
// types, generics). An error means it names a package this file does not import.
func (s *fileScope) resolve(expr ast.Expr) (string, error) {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return s.resolve(t.X)
	case *ast.ParenExpr:
		return s.resolve(t.X)
	case *ast.Ident:
		if isPredeclaredType(t.Name) {
			return t.Name, nil
		}
		return s.importPath + "." + t.Name, nil
	case *ast.SelectorExpr:
		pkg, ok := t.X.(*ast.Ident)
		if !ok {
			return "", nil
		}
		importPath, ok := s.imports[pkg.Name]
		if !ok {
			return "", fmt.Errorf("package %s is not imported", pkg.Name)
		}
		return importPath + "." + t.Sel.Name, nil
	}
	return "", nil
}

// usedImports returns the imports referenced by expr
func (s *fileScope) usedImports(expr ast.Expr) map[string]string {
	used := make(map[string]string)
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if pkg, ok := sel.X.(*ast.Ident); ok {
			if importPath, ok := s.imports[pkg.Name]; ok {
				used[pkg.Name] = importPath
			}
		}
		return false
	})
	return used
}

// isWiredInjector reports whether expr names wired.Injector
func (s *fileScope) isWiredInjector(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != InjectorType {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && s.imports[pkg.Name] == WiredImportPath
}

func isPredeclaredType(name string) bool {
	_, ok := types.Universe.Lookup(name).(*types.TypeName)
	return ok
}
