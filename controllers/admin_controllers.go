package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

// AdminController serves the staff back office under /admin.
type AdminController struct {
	Admin     *services.AdminService
	MediaRoot string
}

func NewAdminController(admin *services.AdminService, mediaRoot string) *AdminController {
	return &AdminController{Admin: admin, MediaRoot: mediaRoot}
}

// GetAllOrders -> newest first, with items
func (ac *AdminController) GetAllOrders(c *gin.Context) {
	orders, err := ac.Admin.ListOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID
func (ac *AdminController) GetOrderByID(c *gin.Context) {
	id, ok := adminID(c, "order_id")
	if !ok {
		return
	}
	order, err := ac.Admin.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetContactMessages
func (ac *AdminController) GetContactMessages(c *gin.Context) {
	msgs, err := ac.Admin.ListContactMessages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Contact messages", msgs)
}

// saveUpload stores the optional file field under MediaRoot/subdir and
// returns its media-relative path, e.g. "menu_items/1700000000-pizza.jpg".
func (ac *AdminController) saveUpload(c *gin.Context, field, subdir string) (*string, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidInput, err)
	}

	name := filepath.Base(file.Filename)
	if !allowedImageExt[strings.ToLower(filepath.Ext(name))] {
		return nil, fmt.Errorf("%w: unsupported image type %q", services.ErrInvalidInput, filepath.Ext(name))
	}

	dir := filepath.Join(ac.MediaRoot, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), name)
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	rel := subdir + "/" + filename
	return &rel, nil
}

func adminID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}
