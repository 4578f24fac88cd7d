package adapters

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAdapter serves a ServiceCatalog on a Gin engine.
type GinAdapter struct {
	engine  *gin.Engine
	catalog ServiceCatalog
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(engine *gin.Engine, catalog ServiceCatalog) *GinAdapter {
	return &GinAdapter{engine: engine, catalog: catalog}
}

// NewDefaultGinAdapter creates a Gin adapter on a bare engine
func NewDefaultGinAdapter(catalog ServiceCatalog) *GinAdapter {
	return NewGinAdapter(gin.New(), catalog)
}

func (a *GinAdapter) Name() string {
	return "Gin"
}

func (a *GinAdapter) Engine() *gin.Engine {
	return a.engine
}

// Mount registers the catalog routes under prefix.
func (a *GinAdapter) Mount(prefix string) {
	group := a.engine.Group(servicesPath(prefix))
	group.GET("", a.list)
	group.GET("/:name", a.show)
}

func (a *GinAdapter) list(c *gin.Context) {
	c.JSON(http.StatusOK, catalogOf(a.catalog))
}

func (a *GinAdapter) show(c *gin.Context) {
	name := c.Param("name")
	info, ok := a.catalog.DescribeService(name)
	if !ok {
		c.JSON(http.StatusNotFound, notFound(name))
		return
	}
	c.JSON(http.StatusOK, info)
}
