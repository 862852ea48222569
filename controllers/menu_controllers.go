package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
	"github.com/shopspring/decimal"
)

// GetAllMenus lists every item, available or not.
func (ac *AdminController) GetAllMenus(c *gin.Context) {
	items, err := ac.Admin.ListMenuItems(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenu
func (ac *AdminController) CreateMenu(c *gin.Context) {
	in, err := ac.menuItemInput(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	item, err := ac.Admin.CreateMenuItem(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenu changes only the submitted fields.
func (ac *AdminController) UpdateMenu(c *gin.Context) {
	id, ok := adminID(c, "menu_id")
	if !ok {
		return
	}
	in, err := ac.menuItemInput(c)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	item, err := ac.Admin.UpdateMenuItem(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenu
func (ac *AdminController) DeleteMenu(c *gin.Context) {
	id, ok := adminID(c, "menu_id")
	if !ok {
		return
	}
	if err := ac.Admin.DeleteMenuItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": id})
}

func (ac *AdminController) menuItemInput(c *gin.Context) (services.MenuItemInput, error) {
	var in services.MenuItemInput

	if v, ok := c.GetPostForm("category_id"); ok {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return in, fmt.Errorf("%w: invalid category_id", services.ErrInvalidInput)
		}
		categoryID := uint(id)
		in.CategoryID = &categoryID
	}
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return in, fmt.Errorf("%w: invalid price", services.ErrInvalidInput)
		}
		in.Price = &price
	}
	if v, ok := c.GetPostForm("is_available"); ok {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return in, fmt.Errorf("%w: invalid is_available", services.ErrInvalidInput)
		}
		in.IsAvailable = &available
	}

	image, err := ac.saveUpload(c, "image", "menu_items")
	if err != nil {
		return in, err
	}
	in.Image = image
	return in, nil
}
