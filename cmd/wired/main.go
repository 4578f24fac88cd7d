package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/toyz/wired/internal/cli"
	"github.com/toyz/wired/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("wired", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		moduleFlag  = flags.String("module", "", "Custom module path for imports (defaults to go.mod module)")
		verboseFlag = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flags.Bool("quiet", false, "Only show errors")
		cleanFlag   = flags.Bool("clean", false, "Delete autogen_wired.go files from the specified directories")
		planFlag    = flags.Bool("plan", false, "Print the composed setup sequence of every service without writing files")
		paramsFlag  = flags.String("params", "", "YAML parameters file checked by -plan")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wired [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Scans Go packages for //wired:: annotations and generates injection metadata.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nDirectory Patterns:\n")
		fmt.Fprintf(stderr, "  ./...              Scan current directory and all subdirectories recursively\n")
		fmt.Fprintf(stderr, "  ./internal/...     Scan internal directory and all its subdirectories\n")
		fmt.Fprintf(stderr, "  ./pkg/widgets      Scan only the specific directory\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  wired ./...\n")
		fmt.Fprintf(stderr, "  wired -plan -params config/params.yaml ./...\n")
		fmt.Fprintf(stderr, "  wired -clean ./...\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	dirs := flags.Args()
	if len(dirs) == 0 {
		fmt.Fprintf(stderr, "Error: at least one directory path is required\n\n")
		flags.Usage()
		return 1
	}
	if *paramsFlag != "" && !*planFlag {
		fmt.Fprintf(stderr, "Error: -params is only used with -plan\n")
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	if *cleanFlag {
		removed, err := cli.NewCleaner().CleanGeneratedFiles(dirs)
		for _, path := range removed {
			diagnostics.Verbose("Removed %s", path)
		}
		if err != nil {
			diagnostics.Error("Clean failed: %v", err)
			return 1
		}
		diagnostics.Info("Removed %d generated files", len(removed))
		return 0
	}

	generator := cli.NewGenerator(diagnostics, *verboseFlag)
	generator.Reporter().SetOutput(stderr)

	err := generator.Run(cli.Config{
		Directories: dirs,
		ModuleName:  *moduleFlag,
		Verbose:     *verboseFlag,
		Plan:        *planFlag,
		ParamsFile:  *paramsFlag,
	})
	if err != nil {
		generator.Reporter().ReportError(err)
		return 1
	}
	return 0
}
