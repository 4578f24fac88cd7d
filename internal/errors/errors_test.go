package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_Error(t *testing.T) {
	err := New(FileSystemErrorCode, "boom")
	assert.Equal(t, "boom", err.Error())

	err.WithLocation(SourceLocation{File: "a.go", Line: 3})
	assert.Equal(t, "a.go:3: boom", err.Error())

	wrapped := Wrap(PlanErrorCode, "plan", fs.ErrNotExist)
	assert.Equal(t, "plan: file does not exist", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, fs.ErrNotExist))
}

func TestBaseError_Describe(t *testing.T) {
	err := WrapFileSystemError("read", "params.yaml", fs.ErrPermission).
		WithContext("attempt", 2).
		WithSuggestions("check permissions")

	assert.Equal(t, FileSystemErrorCode, err.ErrorCode())
	assert.Equal(t, "failed to read params.yaml: permission denied\n  attempt: 2\n  path: params.yaml\n  hint: check permissions", err.Describe())
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "ModuleError", ModuleErrorCode.String())
	assert.Equal(t, "UnknownError", ErrorCode(99).String())
}

func TestWrappers(t *testing.T) {
	var wiredErr WiredError = ModuleError("/tmp/x", fs.ErrNotExist)
	assert.Equal(t, ModuleErrorCode, wiredErr.ErrorCode())
	assert.Equal(t, "/tmp/x", wiredErr.Context()["directory"])
	assert.NotEmpty(t, wiredErr.Suggestions())

	cfg := WrapConfigurationError("parameters", "load", fs.ErrNotExist)
	assert.Equal(t, "failed to load parameters: file does not exist", cfg.Error())
	assert.Empty(t, New(UnknownErrorCode, "x").Context())
}
