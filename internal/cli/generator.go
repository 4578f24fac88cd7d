package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toyz/wired/internal/errors"
	"github.com/toyz/wired/internal/generator"
	"github.com/toyz/wired/internal/models"
	"github.com/toyz/wired/internal/parser"
	"github.com/toyz/wired/internal/utils"
	"github.com/toyz/wired/pkg/wired"
)

// GenerationSummary describes the outcome of a run
type GenerationSummary struct {
	Packages       int
	Classes        int
	Services       int
	AutoServices   []string
	GeneratedFiles []string
	Duration       time.Duration
}

// Generator coordinates scanning, parsing and code generation
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	parser         parser.AnnotationParser
	codeGenerator  generator.CodeGenerator
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem, verbose bool) *Generator {
	reader := utils.NewFileReader()
	return &Generator{
		scanner:        NewDirectoryScannerWithProcessor(utils.NewFileProcessorWithReader(reader)),
		moduleResolver: NewModuleResolver(reader),
		parser:         parser.NewParserWithReader(reader),
		codeGenerator:  generator.NewGenerator(),
		reporter:       NewDiagnosticReporter(verbose),
		diagnostics:    diagnostics,
	}
}

// Reporter returns the error reporter
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// Summary returns the summary of the last run
func (g *Generator) Summary() GenerationSummary {
	return g.summary
}

// Run executes one generator run
func (g *Generator) Run(config Config) error {
	start := time.Now()
	g.summary = GenerationSummary{}
	d := g.diagnostics

	d.WiredHeader("Generating injection metadata")
	d.SourcePath(strings.Join(config.Directories, ", "))
	if config.ModuleName != "" {
		d.Verbose("Using custom module name: %s", config.ModuleName)
	}

	d.PhaseHeader("Discovery")
	dirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		return err
	}
	d.PhaseItem(fmt.Sprintf("Found %d package directories", len(dirs)))

	packages, err := g.parsePackages(dirs, config.ModuleName)
	if err != nil {
		return err
	}
	d.PhaseItem(fmt.Sprintf("Parsed %d classes and %d services in %d packages", g.summary.Classes, g.summary.Services, g.summary.Packages))

	if config.Plan {
		err = g.plan(packages, config.ParamsFile)
	} else {
		err = g.generate(packages)
	}
	if err != nil {
		return err
	}

	g.summary.Duration = time.Since(start)
	stats := map[string]interface{}{
		"Packages": g.summary.Packages,
		"Classes":  g.summary.Classes,
		"Services": g.summary.Services,
		"Duration": g.summary.Duration.Round(time.Millisecond),
	}
	if config.Plan {
		stats["Auto services"] = len(g.summary.AutoServices)
		d.Summary("Summary", stats)
		return nil
	}
	stats["Files"] = len(g.summary.GeneratedFiles)
	d.Summary("Summary", stats)
	d.GenerationComplete()
	return nil
}

func (g *Generator) parsePackages(dirs []string, customModule string) ([]*models.PackageMetadata, error) {
	var packages []*models.PackageMetadata

	for _, dir := range dirs {
		module, err := g.moduleResolver.ResolveModule(dir, customModule)
		if err != nil {
			return nil, err
		}
		importPath, err := g.moduleResolver.BuildPackagePath(module, dir)
		if err != nil {
			return nil, err
		}

		meta, err := g.parser.ParseDirectory(dir, importPath)
		if err != nil {
			return nil, err
		}
		if !meta.HasClasses() {
			g.diagnostics.Verbose("No classes in %s", importPath)
			continue
		}

		g.diagnostics.Verbose("%s: %d classes, %d services", importPath, len(meta.Classes), len(meta.Services))
		g.summary.Packages++
		g.summary.Classes += len(meta.Classes)
		g.summary.Services += len(meta.Services)
		packages = append(packages, meta)
	}
	return packages, nil
}

func (g *Generator) generate(packages []*models.PackageMetadata) error {
	g.diagnostics.PhaseHeader("Generation")

	for _, meta := range packages {
		module, err := g.codeGenerator.GenerateModule(meta)
		if err != nil {
			return err
		}
		if module == nil {
			continue
		}

		g.diagnostics.PhaseProgress("Writing " + displayPath(module.FilePath))
		if err := g.codeGenerator.WriteModule(module); err != nil {
			return err
		}
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, module.FilePath)
	}
	return nil
}

// plan builds a container from the parsed metadata and prints every
// service's composed setup sequence. Nothing is instantiated.
func (g *Generator) plan(packages []*models.PackageMetadata, paramsFile string) error {
	b := wired.NewBuilder()
	if paramsFile != "" {
		if err := b.LoadParameters(paramsFile); err != nil {
			return errors.WrapConfigurationError("parameters", "load", err)
		}
	}

	for _, meta := range packages {
		for i := range meta.Classes {
			if err := b.RegisterClass(meta.Classes[i].Class()); err != nil {
				return errors.PlanError(err)
			}
		}
		for i := range meta.Services {
			if err := b.AddService(meta.Services[i].Descriptor()); err != nil {
				return errors.PlanError(err)
			}
		}
	}
	g.summary.AutoServices = b.AutoRegister()

	container, err := b.Build()
	if err != nil {
		return errors.PlanError(err)
	}

	g.diagnostics.PhaseHeader("Setup plan")
	for _, info := range container.Describe() {
		g.diagnostics.PhaseItem(fmt.Sprintf("%s (%s)", info.Name, info.Class))
		g.diagnostics.Indent()
		for _, call := range info.Setup {
			g.diagnostics.PhaseProgress(call)
		}
		g.diagnostics.Unindent()

		if paramsFile != "" {
			g.warnMissingParameters(container, info.Name)
		}
	}
	return nil
}

func (g *Generator) warnMissingParameters(container *wired.Container, service string) {
	desc, ok := container.Descriptor(service)
	if !ok {
		return
	}

	for _, call := range desc.Setup {
		for _, arg := range call.Args {
			if arg.Kind != wired.ParamArg {
				continue
			}
			if container.Parameter(arg.Name, nil) == nil {
				g.reporter.ReportWarning(fmt.Sprintf("service %s: parameter %s used by %s is not set", service, arg, call.Operation))
			}
		}
	}
}

func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
