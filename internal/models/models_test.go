package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toyz/wired/pkg/wired"
)

func widgetMetadata() ClassMetadata {
	return ClassMetadata{
		StructName: "Widget",
		Name:       "example.com/app/services.Widget",
		Injectable: true,
		Properties: []FieldMetadata{
			{Name: "logger", TypeExpr: "*zap.Logger", Inject: &wired.Marker{Name: "log"}, TypeID: "go.uber.org/zap.Logger"},
			{Name: "store", TypeExpr: "Storage", Inject: &wired.Marker{}, TypeID: "example.com/app/services.Storage"},
			{Name: "hook", TypeExpr: "func()", Inject: &wired.Marker{}},
			{Name: "count", TypeExpr: "int", TypeID: "int"},
		},
		Methods: []MethodMetadata{{Name: "Warmup", Params: []string{"int"}}, {Name: "injectLimits"}},
	}
}

func TestClassMetadata_Class(t *testing.T) {
	meta := widgetMetadata()
	class := meta.Class()

	plan := wired.Plan(class)
	assert.Equal(t, []wired.Binding{{Property: "logger", Target: "log"}}, plan.ByName())
	assert.Equal(t, []wired.Binding{{Property: "store", Target: "example.com/app/services.Storage"}}, plan.ByType())
	assert.Equal(t, []string{"injectLimits"}, class.InjectMethods())
	assert.Len(t, class.Setters, 3)
}

func TestClassMetadata_InjectedFields(t *testing.T) {
	meta := widgetMetadata()

	var names []string
	for _, f := range meta.InjectedFields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"logger", "store", "hook"}, names)
}

func TestPackageMetadata_Class(t *testing.T) {
	pkg := &PackageMetadata{Classes: []ClassMetadata{widgetMetadata()}}

	class, ok := pkg.Class("Widget")
	require.True(t, ok)
	assert.True(t, class.Injectable)
	assert.True(t, pkg.HasClasses())

	_, ok = pkg.Class("Gadget")
	assert.False(t, ok)
}

func TestServiceMetadata_Descriptor(t *testing.T) {
	svc := &ServiceMetadata{
		Name:  "widget",
		Class: "example.com/app/services.Widget",
		Tags:  []string{"inject"},
		Setup: []wired.SetupCall{wired.Call("Warmup", wired.Value(3))},
	}

	desc := svc.Descriptor()
	desc.Tags[0] = "changed"

	assert.Equal(t, "inject", svc.Tags[0])
	assert.Equal(t, []string{"Warmup(3)"}, desc.SetupStrings())
}

func TestGeneratorError(t *testing.T) {
	cause := errors.New("boom")
	err := &GeneratorError{Type: ErrorTypeValidation, File: "widget.go", Line: 4, Message: "bad", Cause: cause}

	assert.Equal(t, "widget.go:4: bad", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad", (&GeneratorError{Message: "bad"}).Error())
	assert.Equal(t, "widget.go: bad", (&GeneratorError{File: "widget.go", Message: "bad"}).Error())
	assert.Equal(t, "validation", ErrorTypeValidation.String())
}
