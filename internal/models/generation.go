package models

// GeneratedModule represents a generated registration file
type GeneratedModule struct {
	PackageName string // name of the package
	FilePath    string // path where the file should be written
	Content     string // generated Go code content
	Classes     int    // number of classes registered
	Services    int    // number of named services registered
}
