package adapters

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// EchoAdapter serves a ServiceCatalog on an Echo instance.
type EchoAdapter struct {
	echo    *echo.Echo
	catalog ServiceCatalog
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo, catalog ServiceCatalog) *EchoAdapter {
	return &EchoAdapter{echo: e, catalog: catalog}
}

// NewDefaultEchoAdapter creates an Echo adapter with banner and port output disabled
func NewDefaultEchoAdapter(catalog ServiceCatalog) *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return NewEchoAdapter(e, catalog)
}

func (a *EchoAdapter) Name() string {
	return "Echo"
}

func (a *EchoAdapter) Echo() *echo.Echo {
	return a.echo
}

// Mount registers the catalog routes under prefix.
func (a *EchoAdapter) Mount(prefix string) {
	path := servicesPath(prefix)
	a.echo.GET(path, a.list)
	a.echo.GET(path+"/:name", a.show)
}

func (a *EchoAdapter) list(c echo.Context) error {
	return c.JSON(http.StatusOK, catalogOf(a.catalog))
}

func (a *EchoAdapter) show(c echo.Context) error {
	name := c.Param("name")
	info, ok := a.catalog.DescribeService(name)
	if !ok {
		return c.JSON(http.StatusNotFound, notFound(name))
	}
	return c.JSON(http.StatusOK, info)
}
