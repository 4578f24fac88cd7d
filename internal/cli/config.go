package cli

// Config holds the configuration for one generator run
type Config struct {
	// Directories to scan; "./..." style patterns recurse
	Directories []string

	// ModuleName overrides the module path read from go.mod
	ModuleName string

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// Plan prints the composed setup sequence of every service instead
	// of writing generated files
	Plan bool

	// ParamsFile is a YAML parameters file consulted by Plan
	ParamsFile string
}
