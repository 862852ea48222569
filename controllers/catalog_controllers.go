package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// Home lists every category.
func (cc *CatalogController) Home(c *gin.Context) {
	categories, err := cc.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		renderError(c, "home", err)
		return
	}
	utils.RenderPage(c, http.StatusOK, "home", "", gin.H{"categories": categories})
}

// MenuItems lists the available items of one category.
func (cc *CatalogController) MenuItems(c *gin.Context) {
	categoryID, ok := pathID(c, "category_id")
	if !ok {
		return
	}

	items, err := cc.Catalog.ListAvailableItems(c.Request.Context(), categoryID)
	if err != nil {
		renderError(c, "menu_items", err)
		return
	}
	utils.RenderPage(c, http.StatusOK, "menu_items", "", gin.H{
		"category_id": categoryID,
		"items":       items,
	})
}
