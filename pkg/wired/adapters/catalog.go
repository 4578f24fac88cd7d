// Package adapters exposes a read-only view of a wired container over the
// Gin, Echo and Fiber web frameworks.
package adapters

import (
	"strings"

	"github.com/toyz/wired/pkg/wired"
)

// ServiceCatalog is the container view served by the adapters.
type ServiceCatalog interface {
	ID() string
	Describe() []wired.ServiceInfo
	DescribeService(name string) (wired.ServiceInfo, bool)
}

var _ ServiceCatalog = (*wired.Container)(nil)

// CatalogResponse is the body of GET <prefix>/services.
type CatalogResponse struct {
	Container string              `json:"container"`
	Services  []wired.ServiceInfo `json:"services"`
}

// ErrorResponse is returned for unknown services.
type ErrorResponse struct {
	Error string `json:"error"`
}

func catalogOf(c ServiceCatalog) CatalogResponse {
	return CatalogResponse{Container: c.ID(), Services: c.Describe()}
}

func notFound(name string) ErrorResponse {
	return ErrorResponse{Error: "service " + name + " not found"}
}

// servicesPath joins prefix and "/services" without doubling slashes.
func servicesPath(prefix string) string {
	return strings.TrimRight(prefix, "/") + "/services"
}
