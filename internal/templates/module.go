package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/wired/internal/models"
	"github.com/toyz/wired/pkg/wired"
)

// WiredImportPath is the runtime package every generated file imports
const WiredImportPath = "github.com/toyz/wired/pkg/wired"

// ModuleData is the input of the module template
type ModuleData struct {
	PackageName string
	Imports     string
	Classes     []ClassData
	Services    []ServiceData
}

// ClassData describes one generated wired.Class literal
type ClassData struct {
	Name        string
	StructName  string
	Properties  []models.FieldMetadata
	Types       []TypeEntry
	Setters     []SetterData
	Operations  []OperationData
	MethodNames []string
	Injectable  bool
	Marker      bool
	Abstract    bool
}

// TypeEntry maps a declared type expression to its identifier
type TypeEntry struct {
	Expr string
	ID   string
}

// SetterData describes the setter of an injected field
type SetterData struct {
	Field    string
	TypeExpr string
}

// OperationData describes one setup operation adapter
type OperationData struct {
	Name         string
	Params       []string
	CallArgs     string
	ReturnsError bool
}

// ServiceData describes one generated service descriptor
type ServiceData struct {
	Name  string
	Class string
	Tags  []string
	Types []string
	Setup []wired.SetupCall
}

// BuildModuleData converts package metadata into template input
func BuildModuleData(meta *models.PackageMetadata) (*ModuleData, error) {
	imports := NewImportManager()
	if err := imports.Add("wired", WiredImportPath); err != nil {
		return nil, err
	}

	data := &ModuleData{PackageName: meta.PackageName}
	for i := range meta.Classes {
		class := &meta.Classes[i]
		if err := imports.AddAll(class.Imports); err != nil {
			return nil, fmt.Errorf("class %s: %w", class.StructName, err)
		}
		data.Classes = append(data.Classes, buildClassData(class))
	}

	for _, svc := range meta.Services {
		data.Services = append(data.Services, ServiceData{
			Name:  svc.Name,
			Class: svc.Class,
			Tags:  svc.Tags,
			Types: svc.Types,
			Setup: svc.Setup,
		})
	}

	data.Imports = imports.GenerateImports()
	return data, nil
}

func buildClassData(class *models.ClassMetadata) ClassData {
	data := ClassData{
		Name:       class.Name,
		StructName: class.StructName,
		Properties: class.Properties,
		Injectable: class.Injectable,
		Marker:     class.Marker,
		Abstract:   class.Abstract,
	}

	seen := make(map[string]bool)
	for _, field := range class.Properties {
		if field.TypeID != "" && !seen[field.TypeExpr] {
			seen[field.TypeExpr] = true
			data.Types = append(data.Types, TypeEntry{Expr: field.TypeExpr, ID: field.TypeID})
		}
		if field.Inject != nil {
			data.Setters = append(data.Setters, SetterData{Field: field.Name, TypeExpr: field.TypeExpr})
		}
	}
	sort.Slice(data.Types, func(i, j int) bool { return data.Types[i].Expr < data.Types[j].Expr })

	for _, method := range class.Methods {
		args := make([]string, len(method.Params))
		for i := range method.Params {
			args[i] = fmt.Sprintf("a%d", i)
		}
		data.Operations = append(data.Operations, OperationData{
			Name:         method.Name,
			Params:       method.Params,
			CallArgs:     strings.Join(args, ", "),
			ReturnsError: method.ReturnsError,
		})
		data.MethodNames = append(data.MethodNames, method.Name)
	}
	return data
}

// GenerateModule renders the generated file for a package
func GenerateModule(registry *TemplateRegistry, meta *models.PackageMetadata) (string, error) {
	data, err := BuildModuleData(meta)
	if err != nil {
		return "", err
	}
	return registry.Execute(ModuleTemplate, data)
}
