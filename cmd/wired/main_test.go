package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeApp(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/app\n\ngo 1.25\n",
		"svc/svc.go": `package svc

import "github.com/toyz/wired/pkg/wired"

//wired::service -Name=clock
type Clock struct{}

//wired::service -Name=reporter
//wired::setup Every %report.every%
type Reporter struct {
	wired.Injector

	//wired::inject
	Clock *Clock
}

func (r *Reporter) Every(n int) {}
`,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestRun_RequiresDirectories(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "at least one directory path is required")
}

func TestRun_ParamsWithoutPlan(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-params", "p.yaml", "."}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "-params is only used with -plan")
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
}

func TestRun_GenerateAndClean(t *testing.T) {
	color.NoColor = true
	root := writeApp(t)
	generated := filepath.Join(root, "svc", "autogen_wired.go")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{root + "/..."}, &stdout, &stderr), stderr.String())
	assert.FileExists(t, generated)

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-clean", root + "/..."}, &stdout, &stderr))
	assert.NoFileExists(t, generated)
	assert.Contains(t, stdout.String(), "Removed 1 generated files")
}

func TestRun_Plan(t *testing.T) {
	color.NoColor = true
	root := writeApp(t)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-plan", root + "/..."}, &stdout, &stderr), stderr.String())

	assert.Contains(t, stdout.String(), "reporter (example.com/app/svc.Reporter)")
	assert.Contains(t, stdout.String(), `injectProperty("Clock", @example.com/app/svc.Clock)`)
	assert.NoFileExists(t, filepath.Join(root, "svc", "autogen_wired.go"))
}

func TestRun_ReportsErrors(t *testing.T) {
	color.NoColor = true
	root := writeApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "svc", "bad.go"), []byte("package svc\n\n//wired::setup Nope\ntype Bad struct{}\n"), 0644))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-quiet", root + "/..."}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Validation Error")
	assert.Contains(t, stderr.String(), "bad.go")
}
