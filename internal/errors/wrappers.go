package errors

import "fmt"

// WrapFileSystemError wraps a failed file system operation on path
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	return Wrap(FileSystemErrorCode, fmt.Sprintf("failed to %s %s", operation, path), cause).
		WithContext("path", path)
}

// WrapConfigurationError wraps a configuration problem of the given kind
func WrapConfigurationError(kind, operation string, cause error) *BaseError {
	return Wrap(ConfigurationErrorCode, fmt.Sprintf("failed to %s %s", operation, kind), cause).
		WithContext("config_type", kind)
}

// ModuleError reports that the module of dir could not be determined
func ModuleError(dir string, cause error) *BaseError {
	return Wrap(ModuleErrorCode, "failed to determine module", cause).
		WithContext("directory", dir).
		WithSuggestions("Run the generator inside a Go module or pass -module")
}

// PlanError reports a service whose setup sequence could not be composed
func PlanError(cause error) *BaseError {
	return Wrap(PlanErrorCode, "failed to compose setup plan", cause)
}
