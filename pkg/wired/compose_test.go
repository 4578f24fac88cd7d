package wired

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose_GuardSequence(t *testing.T) {
	desc := &ServiceDescriptor{Name: "widget"}

	Compose(desc, Plan(widgetClass(t)))

	assert.Equal(t, []string{
		`injectProperty("logger", @log)`,
		`injectProperty("store", @test/app.Storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
	}, desc.SetupStrings())
}

func TestCompose_EmptyPlan(t *testing.T) {
	desc := &ServiceDescriptor{Name: "plain", Setup: []SetupCall{Call("Start")}}

	Compose(desc, &InjectionPlan{})

	assert.Equal(t, []string{
		`injectParameters(@container)`,
		`injectionCompleted()`,
		`Start()`,
	}, desc.SetupStrings())
}

func TestCompose_AuthorCallsFollowGuard(t *testing.T) {
	desc := &ServiceDescriptor{
		Name:  "widget",
		Setup: []SetupCall{Call("Warmup", Value(3)), Call("Start")},
	}

	Compose(desc, Plan(widgetClass(t)))

	assert.Equal(t, []string{
		`injectProperty("logger", @log)`,
		`injectProperty("store", @test/app.Storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
		`Warmup(3)`,
		`Start()`,
	}, desc.SetupStrings())
}

func TestCompose_AuthorOverrideWins(t *testing.T) {
	desc := &ServiceDescriptor{
		Name: "widget",
		Setup: []SetupCall{
			Call("Warmup", Value(3)),
			Call(OpInjectProperty, Value("logger"), Ref("debugLog")),
		},
	}

	Compose(desc, Plan(widgetClass(t)))

	assert.Equal(t, []string{
		`injectProperty("logger", @debugLog)`,
		`injectProperty("store", @test/app.Storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
		`Warmup(3)`,
	}, desc.SetupStrings())
}

func TestCompose_OverrideOfUnplannedPropertyStaysAfterGuard(t *testing.T) {
	desc := &ServiceDescriptor{
		Name:  "widget",
		Setup: []SetupCall{Call(OpInjectProperty, Value("count"), Value(7))},
	}

	Compose(desc, Plan(widgetClass(t)))

	assert.Equal(t, `injectProperty("count", 7)`, desc.Setup[len(desc.Setup)-1].String())
	assert.Len(t, desc.Setup, 5)
}

func TestCompose_DuplicateAuthorCallsConsumedOnce(t *testing.T) {
	desc := &ServiceDescriptor{
		Name: "widget",
		Setup: []SetupCall{
			Call(OpInjectProperty, Value("store"), Ref("storage")),
			Call(OpInjectProperty, Value("store"), Ref("backup")),
		},
	}

	Compose(desc, Plan(widgetClass(t)))

	assert.Equal(t, []string{
		`injectProperty("logger", @log)`,
		`injectProperty("store", @storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
		`injectProperty("store", @backup)`,
	}, desc.SetupStrings())
}

func TestCompose_NotIdempotent(t *testing.T) {
	desc := &ServiceDescriptor{Name: "widget"}
	plan := Plan(widgetClass(t))

	Compose(desc, plan)
	Compose(desc, plan)

	assert.Len(t, desc.Setup, 8)
}

func TestApplyInjectTag(t *testing.T) {
	desc := &ServiceDescriptor{
		Name:  "widget",
		Setup: []SetupCall{Call("Warmup", Value(1)), Call("injectCache", Value("fast"))},
	}

	ApplyInjectTag(desc, []string{"Warmup", "injectLimits", "injectCache", OpInjectionCompleted, OpInjectProperty})

	assert.Equal(t, []string{
		`injectLimits()`,
		`injectCache("fast")`,
		`Warmup(1)`,
	}, desc.SetupStrings())
}

func TestApplyInjectTag_AfterCompose(t *testing.T) {
	desc := &ServiceDescriptor{Name: "widget", Setup: []SetupCall{Call("Warmup", Value(2))}}
	class := widgetClass(t)

	Compose(desc, Plan(class))
	ApplyInjectTag(desc, class.InjectMethods())

	assert.Equal(t, []string{
		`injectLimits()`,
		`injectProperty("logger", @log)`,
		`injectProperty("store", @test/app.Storage)`,
		`injectParameters(@container)`,
		`injectionCompleted()`,
		`Warmup(2)`,
	}, desc.SetupStrings())
}

func TestApplyInjectTag_NoMethods(t *testing.T) {
	desc := &ServiceDescriptor{Name: "plain", Setup: []SetupCall{Call("Start")}}

	ApplyInjectTag(desc, nil)

	assert.Equal(t, []string{`Start()`}, desc.SetupStrings())
}

func TestCallSet(t *testing.T) {
	set := newCallSet([]SetupCall{Call("a"), Call("b"), Call("a", Value(2)), Call("c")})

	first, ok := set.take("a")
	assert.True(t, ok)
	assert.Empty(t, first.Args)

	_, ok = set.take("missing")
	assert.False(t, ok)

	second, ok := set.take("a")
	assert.True(t, ok)
	assert.Equal(t, []Arg{Value(2)}, second.Args)

	_, ok = set.take("a")
	assert.False(t, ok)

	var rest []string
	for _, call := range set.rest() {
		rest = append(rest, call.Operation)
	}
	assert.Equal(t, []string{"b", "c"}, rest)
}
