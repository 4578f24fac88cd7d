package models

import (
	"slices"

	"github.com/toyz/wired/pkg/wired"
)

// ServiceMetadata describes a named service declared on a struct
type ServiceMetadata struct {
	Name       string            // service name
	StructName string            // struct providing the class
	Class      string            // fully-qualified class name
	Tags       []string          // service tags
	Types      []string          // resolved -As type identifiers
	Setup      []wired.SetupCall // //wired::setup calls in declaration order
	FileName   string
	Line       int
}

// Descriptor converts the metadata into a service descriptor
func (s *ServiceMetadata) Descriptor() *wired.ServiceDescriptor {
	return &wired.ServiceDescriptor{
		Name:  s.Name,
		Class: s.Class,
		Tags:  slices.Clone(s.Tags),
		Types: slices.Clone(s.Types),
		Setup: slices.Clone(s.Setup),
	}
}
