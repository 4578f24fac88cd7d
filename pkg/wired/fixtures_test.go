package wired

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type testLogger struct {
	name string
}

type testStorage interface {
	Get(key string) string
}

type memoryStorage struct {
	data map[string]string
}

func (m *memoryStorage) Get(key string) string { return m.data[key] }

type widget struct {
	Injector

	logger *testLogger
	store  testStorage
	count  int

	warmed       int
	limitsLoaded bool
	hookCalls    int
	hookParam    any
	hookErr      error
}

func (w *widget) OnInjectionCompleted() error {
	w.hookCalls++
	w.hookParam = w.Parameter("app.name", "none")
	return w.hookErr
}

const (
	loggerType  = "test/log.Logger"
	storageType = "test/app.Storage"
	memoryType  = "test/app.MemoryStorage"
)

// className keeps class names unique per test so the plan cache never leaks between tests.
func className(t *testing.T, short string) string {
	t.Helper()
	scope := strings.NewReplacer(".", "_", "/", "_").Replace(t.Name())
	return fmt.Sprintf("test/%s/app.%s", scope, short)
}

func widgetClass(t *testing.T) *Class {
	return &Class{
		Name:       className(t, "Widget"),
		Injectable: true,
		Properties: []PropertyMetadata{
			{Name: "logger", DeclaredType: "*log.Logger", Inject: &Marker{Name: "log"}},
			{Name: "store", DeclaredType: "Storage", Inject: &Marker{}},
			{Name: "count", DeclaredType: "int"},
		},
		Resolve: TypeTable{
			"*log.Logger": loggerType,
			"Storage":     storageType,
		}.Resolve,
		Setters: map[string]Setter{
			"logger": Field(func(w *widget, v *testLogger) { w.logger = v }),
			"store":  Field(func(w *widget, v testStorage) { w.store = v }),
		},
		Methods: []string{"Warmup", "injectLimits"},
		Operations: map[string]Operation{
			"Warmup": func(instance any, args []any) error {
				w, err := Receiver[*widget](instance)
				if err != nil {
					return err
				}
				n, err := ArgAt[int](args, 0)
				if err != nil {
					return err
				}
				if w.store == nil {
					return errors.New("store not injected")
				}
				w.warmed += n
				return nil
			},
			"injectLimits": func(instance any, _ []any) error {
				w, err := Receiver[*widget](instance)
				if err != nil {
					return err
				}
				w.limitsLoaded = true
				return nil
			},
		},
		New: func() any { return &widget{} },
	}
}

func loggerClass() *Class {
	return &Class{
		Name: loggerType,
		New:  func() any { return &testLogger{name: "default"} },
	}
}

func storageClass() *Class {
	return &Class{
		Name: memoryType,
		New:  func() any { return &memoryStorage{data: map[string]string{"greeting": "hello"}} },
	}
}

// newWidgetBuilder registers the logger, storage and widget classes with one
// service each.
func newWidgetBuilder(t *testing.T, widgetSetup ...SetupCall) (*Builder, *Class) {
	t.Helper()
	b := NewBuilder(WithParameters(map[string]any{
		"app": map[string]any{"name": "demo", "limits": map[string]any{"max": 10}},
	}))
	class := widgetClass(t)
	if err := b.RegisterClasses(loggerClass(), storageClass(), class); err != nil {
		t.Fatal(err)
	}
	err := b.AddServices(
		&ServiceDescriptor{Name: "log", Class: loggerType},
		&ServiceDescriptor{Name: "storage", Class: memoryType, Types: []string{storageType}},
		&ServiceDescriptor{Name: "widget", Class: class.Name, Setup: widgetSetup},
	)
	if err != nil {
		t.Fatal(err)
	}
	return b, class
}
