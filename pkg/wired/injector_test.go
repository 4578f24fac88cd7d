package wired

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticParams map[string]any

func (p staticParams) Parameters() map[string]any { return p }

func TestInjector_InjectProperty(t *testing.T) {
	var in Injector
	var value string

	err := in.InjectProperty("name", func() error {
		value = "set"
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "set", value)
	assert.Equal(t, []string{"name"}, in.Injected())
	assert.False(t, in.Completed())
}

func TestInjector_DuplicateInjection(t *testing.T) {
	var in Injector
	require.NoError(t, in.InjectProperty("logger", nil))

	calls := 0
	err := in.InjectProperty("logger", func() error {
		calls++
		return nil
	})

	var dup *DuplicateInjectionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "logger", dup.Property)
	assert.ErrorIs(t, err, ErrDuplicateInjection)
	assert.Zero(t, calls)
}

func TestInjector_InjectionAfterCompletion(t *testing.T) {
	var in Injector
	require.NoError(t, in.InjectionCompleted(nil))

	err := in.InjectProperty("logger", nil)

	var late *InjectionAfterCompletionError
	require.ErrorAs(t, err, &late)
	assert.ErrorIs(t, err, ErrInjectionCompleted)
	assert.Empty(t, in.Injected())
}

func TestInjector_DuplicateReportedBeforeCompletion(t *testing.T) {
	var in Injector
	require.NoError(t, in.InjectProperty("logger", nil))
	require.NoError(t, in.InjectionCompleted(nil))

	assert.ErrorIs(t, in.InjectProperty("logger", nil), ErrDuplicateInjection)
}

func TestInjector_FailedSetterIsNotRecorded(t *testing.T) {
	var in Injector
	boom := errors.New("boom")

	assert.ErrorIs(t, in.InjectProperty("store", func() error { return boom }), boom)
	assert.NoError(t, in.InjectProperty("store", nil))
}

func TestInjector_HookRunsOnceAfterTransition(t *testing.T) {
	w := &widget{}
	w.InjectParameters(staticParams{"app": map[string]any{"name": "demo"}})

	require.NoError(t, w.InjectionCompleted(w))
	require.NoError(t, w.InjectionCompleted(w))

	assert.Equal(t, 1, w.hookCalls)
	assert.Equal(t, "demo", w.hookParam)
	assert.True(t, w.Completed())
}

func TestInjector_HookError(t *testing.T) {
	w := &widget{hookErr: errors.New("not ready")}

	assert.EqualError(t, w.InjectionCompleted(w), "not ready")
	assert.True(t, w.Completed())
}

func TestInjector_ParametersAnyState(t *testing.T) {
	var in Injector
	assert.Equal(t, 5, in.Parameter("limits.max", 5))

	in.InjectParameters(staticParams{"limits": map[string]any{"max": 10}})
	require.NoError(t, in.InjectionCompleted(nil))
	assert.Equal(t, 10, in.Parameter("limits.max", 5))

	in.InjectParameters(staticParams{"limits": map[string]any{"max": 20}})
	assert.Equal(t, 20, in.Parameter("limits.max", 5))

	in.InjectParameters(nil)
	assert.Equal(t, 5, in.Parameter("limits.max", 5))
}

func TestInjector_ConcurrentDuplicateInjection(t *testing.T) {
	var in Injector
	var succeeded atomic.Int32
	var wg sync.WaitGroup

	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if in.InjectProperty("logger", nil) == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
}

func TestInjector_IndependentInstances(t *testing.T) {
	a, b := &widget{}, &widget{}
	require.NoError(t, a.InjectProperty("logger", nil))
	require.NoError(t, a.InjectionCompleted(a))

	assert.NoError(t, b.InjectProperty("logger", nil))
	assert.False(t, b.Completed())
}
