package adapters

import (
	"github.com/gofiber/fiber/v2"
)

// FiberAdapter serves a ServiceCatalog on a Fiber app.
type FiberAdapter struct {
	app     *fiber.App
	catalog ServiceCatalog
}

// NewFiberAdapter creates a new Fiber adapter
func NewFiberAdapter(app *fiber.App, catalog ServiceCatalog) *FiberAdapter {
	return &FiberAdapter{app: app, catalog: catalog}
}

// NewDefaultFiberAdapter creates a Fiber adapter with the startup message disabled
func NewDefaultFiberAdapter(catalog ServiceCatalog) *FiberAdapter {
	return NewFiberAdapter(fiber.New(fiber.Config{DisableStartupMessage: true}), catalog)
}

func (a *FiberAdapter) Name() string {
	return "Fiber"
}

func (a *FiberAdapter) App() *fiber.App {
	return a.app
}

// Mount registers the catalog routes under prefix.
func (a *FiberAdapter) Mount(prefix string) {
	path := servicesPath(prefix)
	a.app.Get(path, a.list)
	a.app.Get(path+"/:name", a.show)
}

func (a *FiberAdapter) list(c *fiber.Ctx) error {
	return c.JSON(catalogOf(a.catalog))
}

func (a *FiberAdapter) show(c *fiber.Ctx) error {
	name := c.Params("name")
	info, ok := a.catalog.DescribeService(name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(notFound(name))
	}
	return c.JSON(info)
}
