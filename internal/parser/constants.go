package parser

const (
	// WiredImportPath is the import path of the runtime package
	WiredImportPath = "github.com/toyz/wired/pkg/wired"

	// InjectorType is the struct a class embeds to become injectable
	InjectorType = "Injector"

	// CompletionHook is the method called once injection completes. It is
	// never exposed as a setup operation.
	CompletionHook = "OnInjectionCompleted"

	// Annotation parameter names
	ParamName     = "Name"
	ParamTag      = "Tag"
	ParamAs       = "As"
	ParamAbstract = "Abstract"
)
