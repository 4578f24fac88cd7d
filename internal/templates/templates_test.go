package templates

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/wired/internal/models"
	"github.com/toyz/wired/pkg/wired"
)

func TestArgExpr(t *testing.T) {
	tests := []struct {
		arg  wired.Arg
		want string
	}{
		{wired.Value(3), "wired.Value(3)"},
		{wired.Value(2.5), "wired.Value(2.5)"},
		{wired.Value(float64(2)), "wired.Value(2.0)"},
		{wired.Value("eu \"west\""), `wired.Value("eu \"west\"")`},
		{wired.Value(true), "wired.Value(true)"},
		{wired.Value(nil), "wired.Value(nil)"},
		{wired.Ref("store"), `wired.Ref("store")`},
		{wired.ContainerArg(), "wired.ContainerArg()"},
		{wired.Param("app.limits.max"), `wired.Param("app.limits.max")`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ArgExpr(tt.arg))
	}
}

func TestImportManager(t *testing.T) {
	im := NewImportManager()
	require.NoError(t, im.Add("wired", WiredImportPath))
	require.NoError(t, im.AddAll(map[string]string{
		"context":  "context",
		"echo":     "github.com/labstack/echo/v4",
		"cachepkg": "example.com/app/cache",
	}))
	require.NoError(t, im.Add("", "time"))

	assert.Equal(t, 5, im.Len())
	assert.Equal(t, `import (
	"context"
	"time"

	cachepkg "example.com/app/cache"
	"github.com/labstack/echo/v4"
	"github.com/toyz/wired/pkg/wired"
)
`, im.GenerateImports())
}

func TestImportManager_Conflicts(t *testing.T) {
	im := NewImportManager()
	require.NoError(t, im.Add("log", "example.com/app/log"))

	assert.Error(t, im.Add("log", "log"))
	assert.Error(t, im.Add("applog", "example.com/app/log"))
	assert.NoError(t, im.Add("log", "example.com/app/log"))
}

func TestImportManager_Empty(t *testing.T) {
	assert.Empty(t, NewImportManager().GenerateImports())
}

func widgetPackage() *models.PackageMetadata {
	return &models.PackageMetadata{
		PackageName: "widgets",
		ImportPath:  "example.com/app/widgets",
		Classes: []models.ClassMetadata{
			{
				StructName: "Widget",
				Name:       "example.com/app/widgets.Widget",
				Injectable: true,
				Marker:     true,
				Properties: []models.FieldMetadata{
					{Name: "Log", TypeExpr: "log.Logger", Inject: &wired.Marker{}, TypeID: "example.com/app/log.Logger"},
					{Name: "Store", TypeExpr: "*Storage", Inject: &wired.Marker{Name: "store"}, TypeID: "example.com/app/widgets.Storage"},
					{Name: "name", TypeExpr: "string", TypeID: "string"},
				},
				Methods: []models.MethodMetadata{
					{Name: "Warmup", Params: []string{"int"}, ReturnsError: true},
					{Name: "Reset"},
				},
				Imports: map[string]string{"log": "example.com/app/log"},
			},
			{
				StructName: "Storage",
				Name:       "example.com/app/widgets.Storage",
				Marker:     true,
			},
		},
		Services: []models.ServiceMetadata{
			{
				Name:  "widget",
				Class: "example.com/app/widgets.Widget",
				Tags:  []string{"inject"},
				Setup: []wired.SetupCall{
					wired.Call("Warmup", wired.Param("app.limits.max")),
					wired.InjectPropertyCall("Store", "backup"),
				},
			},
		},
	}
}

func TestGenerateModule(t *testing.T) {
	source, err := GenerateModule(NewTemplateRegistry(), widgetPackage())
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "autogen_wired.go", source, parser.ParseComments)
	require.NoError(t, err, source)

	for _, want := range []string{
		"// Code generated by wired. DO NOT EDIT.",
		"package widgets",
		`"example.com/app/log"`,
		`{Name: "Log", DeclaredType: "log.Logger", Inject: &wired.Marker{}},`,
		`{Name: "Store", DeclaredType: "*Storage", Inject: &wired.Marker{Name: "store"}},`,
		`{Name: "name", DeclaredType: "string"},`,
		`"*Storage": "example.com/app/widgets.Storage",`,
		`"Log": wired.Field(func(s *Widget, v log.Logger) { s.Log = v }),`,
		`s, err := wired.Receiver[*Widget](instance)`,
		`a0, err := wired.ArgAt[int](args, 0)`,
		`return s.Warmup(a0)`,
		"s.Reset()",
		`[]string{"Warmup", "Reset"}`,
		`return &Storage{}`,
		`wired.Call("Warmup", wired.Param("app.limits.max")),`,
		`wired.Call("injectProperty", wired.Value("Store"), wired.Ref("backup")),`,
		`[]string{"inject"}`,
	} {
		assert.Contains(t, source, want)
	}
	assert.NotContains(t, source, `"name": wired.Field`)
}

func TestGenerateModule_NoServices(t *testing.T) {
	pkg := widgetPackage()
	pkg.Services = nil

	source, err := GenerateModule(NewTemplateRegistry(), pkg)
	require.NoError(t, err)
	assert.NotContains(t, source, "AddServices")
	assert.True(t, strings.Contains(source, "return nil"))
}

func TestTemplateRegistry(t *testing.T) {
	registry := NewTemplateRegistry()
	assert.True(t, registry.Has(ModuleTemplate))
	assert.True(t, registry.Has(ClassTemplate))

	_, err := registry.Execute("missing", nil)
	assert.Error(t, err)
}
