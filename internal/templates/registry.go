package templates

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template names
const (
	ModuleTemplate = "module"
	ClassTemplate  = "class"
)

// TemplateRegistry holds the parsed generator templates
type TemplateRegistry struct {
	root *template.Template
}

// NewTemplateRegistry parses every template once
func NewTemplateRegistry() *TemplateRegistry {
	root := template.New(ModuleTemplate).Funcs(template.FuncMap{
		"quote":   quote,
		"argExpr": ArgExpr,
		"join":    joinQuoted,
	})
	template.Must(root.Parse(moduleTemplate))
	template.Must(root.New(ClassTemplate).Parse(classTemplate))

	return &TemplateRegistry{root: root}
}

// Has reports whether name is registered
func (tr *TemplateRegistry) Has(name string) bool {
	return tr.root.Lookup(name) != nil
}

// Execute runs the named template against data
func (tr *TemplateRegistry) Execute(name string, data interface{}) (string, error) {
	tmpl := tr.root.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

const moduleTemplate = `// Code generated by wired. DO NOT EDIT.

package {{.PackageName}}

{{.Imports}}
// WiredClasses describes the container classes declared in this package.
var WiredClasses = []*wired.Class{
{{- range .Classes}}
{{template "class" .}}
{{- end}}
}

// RegisterWired adds the classes and services of this package to b.
func RegisterWired(b *wired.Builder) error {
	if err := b.RegisterClasses(WiredClasses...); err != nil {
		return err
	}
{{- if .Services}}
	return b.AddServices(
{{- range .Services}}
		&wired.ServiceDescriptor{
			Name:  {{quote .Name}},
			Class: {{quote .Class}},
{{- if .Tags}}
			Tags:  []string{ {{- join .Tags -}} },
{{- end}}
{{- if .Types}}
			Types: []string{ {{- join .Types -}} },
{{- end}}
{{- if .Setup}}
			Setup: []wired.SetupCall{
{{- range .Setup}}
				wired.Call({{quote .Operation}}{{range .Args}}, {{argExpr .}}{{end}}),
{{- end}}
			},
{{- end}}
		},
{{- end}}
	)
{{- else}}
	return nil
{{- end}}
}
`

const classTemplate = `	{
		Name: {{quote .Name}},
{{- if .Properties}}
		Properties: []wired.PropertyMetadata{
{{- range .Properties}}
			{Name: {{quote .Name}}, DeclaredType: {{quote .TypeExpr}}{{if .Inject}}, Inject: &wired.Marker{ {{- if .Inject.Name}}Name: {{quote .Inject.Name}}{{end -}} }{{end}}},
{{- end}}
		},
		Resolve: wired.TypeTable{
{{- range .Types}}
			{{quote .Expr}}: {{quote .ID}},
{{- end}}
		}.Resolve,
{{- end}}
{{- if .Setters}}
		Setters: map[string]wired.Setter{
{{- range .Setters}}
			{{quote .Field}}: wired.Field(func(s *{{$.StructName}}, v {{.TypeExpr}}) { s.{{.Field}} = v }),
{{- end}}
		},
{{- end}}
{{- if .Operations}}
		Operations: map[string]wired.Operation{
{{- range .Operations}}
			{{quote .Name}}: func(instance any, args []any) error {
				s, err := wired.Receiver[*{{$.StructName}}](instance)
				if err != nil {
					return err
				}
{{- range $i, $p := .Params}}
				a{{$i}}, err := wired.ArgAt[{{$p}}](args, {{$i}})
				if err != nil {
					return err
				}
{{- end}}
{{- if .ReturnsError}}
				return s.{{.Name}}({{.CallArgs}})
{{- else}}
				s.{{.Name}}({{.CallArgs}})
				return nil
{{- end}}
			},
{{- end}}
		},
		Methods: []string{ {{- join .MethodNames -}} },
{{- end}}
		New:        func() any { return &{{.StructName}}{} },
		Injectable: {{.Injectable}},
		Marker:     {{.Marker}},
		Abstract:   {{.Abstract}},
	},`
