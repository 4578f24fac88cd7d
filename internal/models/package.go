package models

// PackageMetadata represents all annotations found in a package
type PackageMetadata struct {
	PackageName string            // name of the Go package
	PackagePath string            // file system path to the package
	ImportPath  string            // import path of the package
	Classes     []ClassMetadata   // structs registered as container classes
	Services    []ServiceMetadata // named services declared with //wired::service -Name
}

// HasClasses reports whether anything in the package needs generated code
func (p *PackageMetadata) HasClasses() bool {
	return len(p.Classes) > 0
}

// Class returns the class declared by structName
func (p *PackageMetadata) Class(structName string) (*ClassMetadata, bool) {
	for i := range p.Classes {
		if p.Classes[i].StructName == structName {
			return &p.Classes[i], true
		}
	}
	return nil, false
}
