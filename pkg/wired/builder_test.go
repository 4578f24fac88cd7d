package wired

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ComposesInjectableServices(t *testing.T) {
	b, _ := newWidgetBuilder(t, Call("Warmup", Value(3)))

	c, err := b.Build()
	require.NoError(t, err)

	desc, ok := c.Descriptor("widget")
	require.True(t, ok)
	assert.Equal(t, []string{
		`injectProperty("logger", @log)`,
		`injectProperty("store", @test/app.Storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
		`Warmup(3)`,
	}, desc.SetupStrings())

	logDesc, _ := c.Descriptor("log")
	assert.Empty(t, logDesc.Setup)
}

func TestBuilder_BuildOnce(t *testing.T) {
	b, _ := newWidgetBuilder(t)
	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrAlreadyBuilt)
}

func TestBuilder_InjectTagPass(t *testing.T) {
	b, _ := newWidgetBuilder(t)
	desc, ok := b.Service("widget")
	require.True(t, ok)
	desc.Tags = []string{TagInject}

	c, err := b.Build()
	require.NoError(t, err)

	built, _ := c.Descriptor("widget")
	assert.Equal(t, `injectLimits()`, built.Setup[0].String())
	assert.Len(t, built.Setup, 5)

	w, err := Resolve[*widget](c, "widget")
	require.NoError(t, err)
	assert.True(t, w.limitsLoaded)
}

func TestBuilder_Registration(t *testing.T) {
	b := NewBuilder()

	require.NoError(t, b.RegisterClass(loggerClass()))
	assert.ErrorIs(t, b.RegisterClass(loggerClass()), ErrAlreadyRegistered)
	assert.Error(t, b.RegisterClass(nil))
	assert.Error(t, b.RegisterClass(&Class{Name: "test/app.NoCtor"}))

	require.NoError(t, b.AddService(&ServiceDescriptor{Name: "log", Class: loggerType}))
	assert.ErrorIs(t, b.AddService(&ServiceDescriptor{Name: "log", Class: loggerType}), ErrAlreadyRegistered)
	assert.Error(t, b.AddService(&ServiceDescriptor{Class: loggerType}))
}

func TestBuilder_AddServiceCopiesDescriptor(t *testing.T) {
	b := NewBuilder()
	desc := &ServiceDescriptor{Name: "log", Class: loggerType}
	require.NoError(t, b.AddService(desc))

	desc.Class = "changed"

	stored, _ := b.Service("log")
	assert.Equal(t, loggerType, stored.Class)
}

func TestBuilder_UnknownClass(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddService(&ServiceDescriptor{Name: "ghost", Class: "test/app.Ghost"}))

	_, err := b.Build()

	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestBuilder_PlannedPropertyWithoutSetter(t *testing.T) {
	class := widgetClass(t)
	delete(class.Setters, "store")
	b := NewBuilder()
	require.NoError(t, b.RegisterClass(class))
	require.NoError(t, b.AddService(&ServiceDescriptor{Name: "widget", Class: class.Name}))

	_, err := b.Build()

	var unknown *UnknownPropertyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "store", unknown.Property)
}

func TestBuilder_AutoRegister(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.RegisterClasses(
		&Class{Name: "example.com/app/billing.InvoiceService", Marker: true, New: func() any { return &testLogger{} }},
		&Class{Name: "example.com/app/billing.BaseService", Marker: true, Abstract: true, New: func() any { return &testLogger{} }},
		&Class{Name: "example.com/app/billing.Mailer", Marker: true, New: func() any { return &testLogger{} }},
		&Class{Name: "example.com/app/billing.AuditService", New: func() any { return &testLogger{} }},
		&Class{Name: "example.com/app/billing.PaymentService", Marker: true, New: func() any { return &testLogger{} }},
	))
	require.NoError(t, b.AddService(&ServiceDescriptor{Name: "payments", Class: "example.com/app/billing.PaymentService"}))

	added := b.AutoRegister()

	assert.Equal(t, []string{"_auto.example_com_app_billing_InvoiceService"}, added)
	assert.Empty(t, b.AutoRegister())
}

func TestAutoServiceName(t *testing.T) {
	assert.Equal(t, "_auto.github_com_acme_shop_orders_OrderService", AutoServiceName("github.com/acme/shop/orders.OrderService"))
}

func TestBuilder_LoadParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: yaml\n  limits:\n    max: 42\nfeatures: [a, b]\n"), 0o644))

	b := NewBuilder(WithParameters(map[string]any{"app": map[string]any{"name": "code", "debug": true}}))
	require.NoError(t, b.LoadParameters(path))
	require.NoError(t, b.SetParameter("env", "test"))
	c, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "yaml", c.Parameter("app.name", nil))
	assert.Equal(t, true, c.Parameter("app.debug", nil))
	assert.Equal(t, 42, c.Parameter("app.limits.max", nil))
	assert.Equal(t, []any{"a", "b"}, c.Parameter("features", nil))
	assert.Equal(t, "test", c.Parameters()["env"])
}

func TestBuilder_LoadParametersErrors(t *testing.T) {
	b := NewBuilder()

	assert.Error(t, b.LoadParameters(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, b.LoadParametersYAML([]byte("- just\n- a list\n")))
}

func TestWidgetEndToEndWithYAMLParameters(t *testing.T) {
	b, _ := newWidgetBuilder(t, Call("Warmup", Param("app.limits.max")))
	require.NoError(t, b.LoadParametersYAML([]byte("app:\n  name: from-yaml\n  limits:\n    max: 7\n")))
	c, err := b.Build()
	require.NoError(t, err)

	w, err := Resolve[*widget](c, "widget")
	require.NoError(t, err)

	assert.Equal(t, 7, w.warmed)
	assert.Equal(t, "from-yaml", w.hookParam)
}

func TestBuilder_FrozenAfterBuild(t *testing.T) {
	b, _ := newWidgetBuilder(t)
	c, err := b.Build()
	require.NoError(t, err)

	desc, ok := b.Service("widget")
	require.True(t, ok)
	desc.Setup = nil

	assert.ErrorIs(t, b.AddService(&ServiceDescriptor{Name: "late", Class: loggerType}), ErrAlreadyBuilt)
	assert.ErrorIs(t, b.RegisterClass(&Class{Name: "test/late.Class", New: func() any { return &testLogger{} }}), ErrAlreadyBuilt)
	assert.ErrorIs(t, b.SetParameter("env", "late"), ErrAlreadyBuilt)
	assert.ErrorIs(t, b.LoadParametersYAML([]byte("env: late\n")), ErrAlreadyBuilt)
	assert.ErrorIs(t, b.LoadParameters(filepath.Join(t.TempDir(), "params.yaml")), ErrAlreadyBuilt)
	assert.Nil(t, b.AutoRegister())

	assert.False(t, c.Has("late"))
	assert.Equal(t, []string{"log", "storage", "widget"}, c.Services())
	assert.Nil(t, c.Parameter("env", nil))

	w, err := Resolve[*widget](c, "widget")
	require.NoError(t, err)
	assert.Equal(t, []string{"logger", "store"}, w.Injected())
	assert.True(t, w.Completed())
}

func TestBuilder_FailedBuildComposesNothing(t *testing.T) {
	b, _ := newWidgetBuilder(t)
	require.NoError(t, b.AddService(&ServiceDescriptor{Name: "orphan", Class: "test/missing.Class"}))

	_, err := b.Build()
	assert.ErrorIs(t, err, ErrClassNotFound)

	desc, _ := b.Service("widget")
	assert.Empty(t, desc.Setup)

	require.NoError(t, b.RegisterClass(&Class{Name: "test/missing.Class", New: func() any { return &testLogger{} }}))
	c, err := b.Build()
	require.NoError(t, err)

	built, _ := c.Descriptor("widget")
	assert.Equal(t, []string{
		`injectProperty("logger", @log)`,
		`injectProperty("store", @test/app.Storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
	}, built.SetupStrings())
}
