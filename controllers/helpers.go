package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

const pageNotFound = "not_found"

// pathID parses a numeric path parameter; anything else is a 404 page.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RenderPage(c, http.StatusNotFound, pageNotFound, "Page not found", nil)
		return 0, false
	}
	return uint(id), true
}

// currentUser is only called behind LoginRequired.
func currentUser(c *gin.Context) utils.Identity {
	id, _ := utils.CurrentIdentity(c)
	return id
}

// renderError maps a service error onto a page response.
func renderError(c *gin.Context, page string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RenderPage(c, http.StatusNotFound, pageNotFound, "Not found", nil)
	default:
		_ = c.Error(err)
		utils.RenderPage(c, http.StatusInternalServerError, page, "Something went wrong", nil)
	}
}

// respondServiceError is the JSON counterpart used by the back office.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrInUse):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		_ = c.Error(err)
		utils.RespondError(c, http.StatusInternalServerError, fmt.Errorf("internal error"))
	}
}
