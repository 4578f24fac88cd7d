package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/toyz/wired/internal/utils"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func bufferedDiagnostics() (*utils.DiagnosticSystem, *bytes.Buffer) {
	color.NoColor = true
	d := utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	d.SetShowTime(false)
	var out bytes.Buffer
	d.SetOutput(&out, &out)
	return d, &out
}

const appGoMod = "module example.com/app\n\ngo 1.25\n"

const appWidgets = `package widgets

import (
	"example.com/app/logging"
	"github.com/toyz/wired/pkg/wired"
)

//wired::service -Name=widget -Tag=inject
//wired::setup Warmup %app.warmup%
//wired::setup Label %app.missing%
type Widget struct {
	wired.Injector

	//wired::inject
	Log *logging.Logger

	//wired::inject store
	Store *Storage
}

func (w *Widget) Warmup(n int) error { return nil }

func (w *Widget) Label(s string) {}

func (w *Widget) injectDefaults() {}

//wired::service -Name=store
type Storage struct{}

//wired::service
type CacheService struct{}
`

const appLogging = `package logging

//wired::service -Name=logger
type Logger struct{}
`

func newApp(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":             appGoMod,
		"main.go":            "package main\n\nfunc main() {}\n",
		"widgets/widgets.go": appWidgets,
		"logging/logging.go": appLogging,
		"params.yaml":        "app:\n  warmup: 3\n",
	})
	return root
}
