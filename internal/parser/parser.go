package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"github.com/toyz/wired/internal/annotations"
	"github.com/toyz/wired/internal/models"
	"github.com/toyz/wired/internal/utils"
	"github.com/toyz/wired/pkg/wired"
)

// Parser extracts container classes and services from annotated Go source
type Parser struct {
	fileReader  *utils.FileReader
	processor   *utils.FileProcessor
	annotations *annotations.ParticipleParser
	reporter    *ErrorReporter
}

// NewParser creates a parser with its own file reader
func NewParser() *Parser {
	return NewParserWithReader(utils.NewFileReader())
}

// NewParserWithReader creates a parser sharing reader's file set and caches
func NewParserWithReader(reader *utils.FileReader) *Parser {
	return &Parser{
		fileReader:  reader,
		processor:   utils.NewFileProcessorWithReader(reader),
		annotations: annotations.NewParticipleParser(annotations.BuiltinSchemas()),
		reporter:    NewErrorReporter(),
	}
}

// ParseDirectory parses the package in dir, whose import path is importPath
func (p *Parser) ParseDirectory(dir, importPath string) (*models.PackageMetadata, error) {
	files, packageName, err := p.processor.ParseDirectoryFiles(dir)
	if err != nil {
		return nil, err
	}

	pkg := p.newPackage(packageName, dir, importPath)
	for _, file := range files {
		if err := pkg.addFile(file.Path, file.AST); err != nil {
			return nil, err
		}
	}
	return pkg.finish()
}

// ParseSource parses a single in-memory file as a whole package
func (p *Parser) ParseSource(filename, source, importPath string) (*models.PackageMetadata, error) {
	file, err := p.fileReader.ParseGoSource(filename, source)
	if err != nil {
		return nil, err
	}

	pkg := p.newPackage(file.Name.Name, filepath.Dir(filename), importPath)
	if err := pkg.addFile(filename, file); err != nil {
		return nil, err
	}
	return pkg.finish()
}

type packageBuilder struct {
	parser  *Parser
	meta    *models.PackageMetadata
	structs []*structDecl
	byName  map[string]*structDecl
	methods []methodDecl
}

type structDecl struct {
	class   models.ClassMetadata
	service *models.ServiceMetadata
	setups  []setupDecl
}

type setupDecl struct {
	call wired.SetupCall
	line int
}

type methodDecl struct {
	decl     *ast.FuncDecl
	scope    *fileScope
	fileName string
}

func (p *Parser) newPackage(packageName, dir, importPath string) *packageBuilder {
	return &packageBuilder{
		parser: p,
		meta: &models.PackageMetadata{
			PackageName: packageName,
			PackagePath: dir,
			ImportPath:  importPath,
		},
		byName: make(map[string]*structDecl),
	}
}

func (b *packageBuilder) line(pos token.Pos) int {
	return b.parser.fileReader.Position(pos).Line
}

func (b *packageBuilder) addFile(fileName string, file *ast.File) error {
	scope := newFileScope(file, b.meta.ImportPath)

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				typeSpec := spec.(*ast.TypeSpec)
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				if err := b.addStruct(fileName, scope, typeSpec, structType, doc); err != nil {
					return err
				}
			}
		case *ast.FuncDecl:
			if d.Recv != nil && len(d.Recv.List) == 1 {
				b.methods = append(b.methods, methodDecl{decl: d, scope: scope, fileName: fileName})
			}
		}
	}
	return nil
}

func (b *packageBuilder) parseAnnotations(fileName string, groups ...*ast.CommentGroup) ([]*annotations.ParsedAnnotation, error) {
	var parsed []*annotations.ParsedAnnotation
	for _, group := range groups {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			if !annotations.IsAnnotation(comment.Text) {
				continue
			}
			pos := b.parser.fileReader.Position(comment.Pos())
			location := annotations.SourceLocation{File: fileName, Line: pos.Line, Column: pos.Column}
			annotation, err := b.parser.annotations.ParseAnnotation(comment.Text, location)
			if err != nil {
				return nil, b.parser.reporter.Annotation(err, fileName, pos.Line)
			}
			parsed = append(parsed, annotation)
		}
	}
	return parsed, nil
}

func (b *packageBuilder) addStruct(fileName string, scope *fileScope, spec *ast.TypeSpec, st *ast.StructType, doc *ast.CommentGroup) error {
	reporter := b.parser.reporter
	structName := spec.Name.Name
	line := b.line(spec.Pos())

	found, err := b.parseAnnotations(fileName, doc)
	if err != nil {
		return err
	}

	var (
		service *annotations.ParsedAnnotation
		setups  []*annotations.ParsedAnnotation
	)
	for _, a := range found {
		switch a.Type {
		case annotations.ServiceAnnotation:
			if service != nil {
				return reporter.Validation(fileName, a.Location.Line, fmt.Sprintf("%s has more than one //wired::service annotation", structName))
			}
			service = a
		case annotations.SetupAnnotation:
			setups = append(setups, a)
		case annotations.InjectAnnotation:
			return reporter.Validation(fileName, a.Location.Line, fmt.Sprintf("//wired::inject on type %s", structName),
				"Place //wired::inject on the struct field to be injected")
		}
	}

	injectable := false
	for _, field := range st.Fields.List {
		if len(field.Names) != 0 {
			continue
		}
		if scope.isWiredInjector(field.Type) {
			injectable = true
		}
		if star, ok := field.Type.(*ast.StarExpr); ok && scope.isWiredInjector(star.X) {
			return reporter.Validation(fileName, b.line(field.Pos()), fmt.Sprintf("%s embeds *wired.Injector", structName),
				"Embed wired.Injector by value so every instance owns its injection state")
		}
	}

	if service == nil && !injectable {
		if len(setups) > 0 {
			return reporter.Validation(fileName, setups[0].Location.Line, fmt.Sprintf("//wired::setup on %s without a service", structName),
				"Declare the service with //wired::service -Name=<name>")
		}
		for _, field := range st.Fields.List {
			fieldAnnotations, err := b.parseAnnotations(fileName, field.Doc, field.Comment)
			if err != nil {
				return err
			}
			if len(fieldAnnotations) > 0 {
				return reporter.Validation(fileName, b.line(field.Pos()), fmt.Sprintf("%s has //wired::inject fields but does not embed wired.Injector", structName),
					fmt.Sprintf("Add wired.Injector as an embedded field of %s", structName))
			}
		}
		return nil
	}

	if spec.TypeParams != nil {
		return reporter.Validation(fileName, line, fmt.Sprintf("generic struct %s cannot be a container class", structName))
	}

	decl := &structDecl{
		class: models.ClassMetadata{
			StructName: structName,
			Name:       b.meta.ImportPath + "." + structName,
			FileName:   fileName,
			Line:       line,
			Injectable: injectable,
			Marker:     service != nil,
			Imports:    make(map[string]string),
		},
	}

	if err := b.addFields(fileName, scope, decl, st); err != nil {
		return err
	}

	if service != nil {
		decl.class.Abstract = annotations.Param(service, ParamAbstract, false)
		name := annotations.Param(service, ParamName, "")
		if name == "" && len(setups) > 0 {
			return reporter.Validation(fileName, setups[0].Location.Line, fmt.Sprintf("//wired::setup on %s requires a named service", structName),
				"Add -Name=<name> to the //wired::service annotation")
		}
		if name != "" {
			svc, err := b.service(fileName, scope, structName, decl.class.Name, service, setups)
			if err != nil {
				return err
			}
			decl.service = svc
			decl.setups = make([]setupDecl, len(setups))
			for i, a := range setups {
				decl.setups[i] = setupDecl{call: svc.Setup[i], line: a.Location.Line}
			}
		}
	}

	b.structs = append(b.structs, decl)
	b.byName[structName] = decl
	return nil
}

func (b *packageBuilder) addFields(fileName string, scope *fileScope, decl *structDecl, st *ast.StructType) error {
	reporter := b.parser.reporter
	class := &decl.class

	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue
		}
		line := b.line(field.Pos())

		found, err := b.parseAnnotations(fileName, field.Doc, field.Comment)
		if err != nil {
			return err
		}

		var marker *wired.Marker
		for _, a := range found {
			if a.Type != annotations.InjectAnnotation {
				return reporter.Validation(fileName, a.Location.Line, fmt.Sprintf("//wired::%s cannot annotate field %s.%s", a.Type, class.StructName, field.Names[0].Name))
			}
			if marker != nil {
				return reporter.Validation(fileName, a.Location.Line, fmt.Sprintf("field %s.%s has more than one //wired::inject annotation", class.StructName, field.Names[0].Name))
			}
			marker = &wired.Marker{Name: annotations.Param(a, ParamName, a.PositionalText(0))}
		}

		typeExpr := types.ExprString(field.Type)
		typeID, resolveErr := scope.resolve(field.Type)

		if marker != nil {
			if !class.Injectable {
				return reporter.Validation(fileName, line, fmt.Sprintf("field %s.%s is injected but %s does not embed wired.Injector", class.StructName, field.Names[0].Name, class.StructName),
					fmt.Sprintf("Add wired.Injector as an embedded field of %s", class.StructName))
			}
			if resolveErr != nil {
				return reporter.UnresolvedType(fileName, line, class.StructName+"."+field.Names[0].Name, typeExpr)
			}
			if err := mergeImports(class.Imports, scope.usedImports(field.Type)); err != nil {
				return reporter.Validation(fileName, line, err.Error())
			}
		}

		for _, name := range field.Names {
			class.Properties = append(class.Properties, models.FieldMetadata{
				Name:     name.Name,
				TypeExpr: typeExpr,
				Inject:   marker,
				TypeID:   typeID,
			})
		}
	}
	return nil
}

func (b *packageBuilder) service(fileName string, scope *fileScope, structName, className string, a *annotations.ParsedAnnotation, setups []*annotations.ParsedAnnotation) (*models.ServiceMetadata, error) {
	reporter := b.parser.reporter

	svc := &models.ServiceMetadata{
		Name:       annotations.Param(a, ParamName, ""),
		StructName: structName,
		Class:      className,
		Tags:       annotations.Param[[]string](a, ParamTag, nil),
		FileName:   fileName,
		Line:       a.Location.Line,
	}

	for _, as := range annotations.Param[[]string](a, ParamAs, nil) {
		expr, err := goparser.ParseExpr(as)
		if err != nil {
			return nil, reporter.Validation(fileName, a.Location.Line, fmt.Sprintf("invalid -As type %q", as))
		}
		id, err := scope.resolve(expr)
		if err != nil || id == "" {
			return nil, reporter.UnresolvedType(fileName, a.Location.Line, "service "+svc.Name, as)
		}
		svc.Types = append(svc.Types, id)
	}

	for _, setup := range setups {
		args := make([]wired.Arg, 0, len(setup.Positional)-1)
		for _, literal := range setup.Positional[1:] {
			args = append(args, literal.Arg())
		}
		svc.Setup = append(svc.Setup, wired.Call(setup.PositionalText(0), args...))
	}
	return svc, nil
}

func (b *packageBuilder) finish() (*models.PackageMetadata, error) {
	if err := b.attachMethods(); err != nil {
		return nil, err
	}

	reporter := b.parser.reporter
	services := make(map[string]models.ServiceMetadata)

	for _, decl := range b.structs {
		b.meta.Classes = append(b.meta.Classes, decl.class)
		if decl.service == nil {
			continue
		}
		if first, exists := services[decl.service.Name]; exists {
			return nil, reporter.DuplicateService(decl.service.Name, first, *decl.service)
		}
		if err := b.checkSetup(decl); err != nil {
			return nil, err
		}
		services[decl.service.Name] = *decl.service
		b.meta.Services = append(b.meta.Services, *decl.service)
	}
	return b.meta, nil
}

func (b *packageBuilder) attachMethods() error {
	for _, m := range b.methods {
		structName := receiverName(m.decl.Recv.List[0].Type)
		decl, ok := b.byName[structName]
		if !ok {
			continue
		}

		method, ok := operationMethod(m.decl)
		if !ok {
			continue
		}

		class := &decl.class
		for _, param := range m.decl.Type.Params.List {
			if err := mergeImports(class.Imports, m.scope.usedImports(param.Type)); err != nil {
				return b.parser.reporter.Validation(m.fileName, b.line(m.decl.Pos()), err.Error())
			}
		}
		class.Methods = append(class.Methods, method)
	}
	return nil
}

// checkSetup verifies that every setup call names a usable method with a
// matching number of arguments. Guard operations are checked at build time.
// On services tagged inject, inject-prefixed methods that take arguments need
// a setup call of their own: the tag pass would call them without any.
func (b *packageBuilder) checkSetup(decl *structDecl) error {
	reporter := b.parser.reporter

	if slices.Contains(decl.service.Tags, wired.TagInject) {
		for _, method := range decl.class.Methods {
			if !strings.HasPrefix(method.Name, wired.TagInject) || len(method.Params) == 0 {
				continue
			}
			configured := slices.ContainsFunc(decl.setups, func(setup setupDecl) bool {
				return setup.call.Operation == method.Name
			})
			if !configured {
				return reporter.Validation(decl.service.FileName, decl.service.Line,
					fmt.Sprintf("service %s is tagged inject but %s.%s takes %d arguments", decl.service.Name, decl.class.StructName, method.Name, len(method.Params)),
					fmt.Sprintf("Add //wired::setup %s with its arguments, or drop the parameters", method.Name))
			}
		}
	}

	for _, setup := range decl.setups {
		op := setup.call.Operation
		if wired.IsReservedOperation(op) {
			continue
		}

		var method *models.MethodMetadata
		for i := range decl.class.Methods {
			if decl.class.Methods[i].Name == op {
				method = &decl.class.Methods[i]
				break
			}
		}
		if method == nil {
			return reporter.Validation(decl.service.FileName, setup.line, fmt.Sprintf("setup operation %s is not a method of %s", op, decl.class.StructName),
				"Setup operations must be exported or inject-prefixed methods returning nothing or a single error")
		}
		if len(method.Params) != len(setup.call.Args) {
			return reporter.Validation(decl.service.FileName, setup.line, fmt.Sprintf("setup operation %s takes %d arguments, %d given", op, len(method.Params), len(setup.call.Args)))
		}
	}
	return nil
}

// operationMethod reports whether decl can be called as a setup operation
func operationMethod(decl *ast.FuncDecl) (models.MethodMetadata, bool) {
	name := decl.Name.Name
	if !ast.IsExported(name) && !strings.HasPrefix(name, wired.TagInject) {
		return models.MethodMetadata{}, false
	}
	if wired.IsReservedOperation(name) || name == CompletionHook || decl.Type.TypeParams != nil {
		return models.MethodMetadata{}, false
	}

	method := models.MethodMetadata{Name: name}
	for _, param := range decl.Type.Params.List {
		if _, variadic := param.Type.(*ast.Ellipsis); variadic {
			return models.MethodMetadata{}, false
		}
		count := len(param.Names)
		if count == 0 {
			count = 1
		}
		for range count {
			method.Params = append(method.Params, types.ExprString(param.Type))
		}
	}

	if results := decl.Type.Results; results != nil {
		if len(results.List) != 1 || len(results.List[0].Names) > 1 {
			return models.MethodMetadata{}, false
		}
		if ident, ok := results.List[0].Type.(*ast.Ident); !ok || ident.Name != "error" {
			return models.MethodMetadata{}, false
		}
		method.ReturnsError = true
	}
	return method, true
}

func receiverName(expr ast.Expr) string {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func mergeImports(dst, src map[string]string) error {
	for alias, importPath := range src {
		if existing, ok := dst[alias]; ok && existing != importPath {
			return fmt.Errorf("package name %s refers to both %s and %s", alias, existing, importPath)
		}
		dst[alias] = importPath
	}
	return nil
}
