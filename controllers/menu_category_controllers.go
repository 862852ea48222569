package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

// GetAllCategories
func (ac *AdminController) GetAllCategories(c *gin.Context) {
	categories, err := ac.Admin.Categories.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

// CreateCategory accepts a form with an optional "image" file.
func (ac *AdminController) CreateCategory(c *gin.Context) {
	image, err := ac.saveUpload(c, "image", "category")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	category, err := ac.Admin.CreateCategory(c.Request.Context(), services.CategoryInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory
func (ac *AdminController) UpdateCategory(c *gin.Context) {
	id, ok := adminID(c, "cat_id")
	if !ok {
		return
	}
	image, err := ac.saveUpload(c, "image", "category")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	category, err := ac.Admin.UpdateCategory(c.Request.Context(), id, services.CategoryInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Image:       image,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory also removes its menu items.
func (ac *AdminController) DeleteCategory(c *gin.Context) {
	id, ok := adminID(c, "cat_id")
	if !ok {
		return
	}
	if err := ac.Admin.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
