package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse is a rendered page: the JSON envelope plus the page name and
// any flash notices consumed by this request.
type PageResponse struct {
	Status  bool        `json:"status"`
	Page    string      `json:"page"`
	Message string      `json:"message,omitempty"`
	Notices []Notice    `json:"notices"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

func RenderPage(c *gin.Context, code int, page, message string, data interface{}) {
	c.JSON(code, PageResponse{
		Status:  code >= 200 && code < 300,
		Page:    page,
		Message: message,
		Notices: PopFlash(c),
		Data:    data,
	})
}

// Redirect ends a form flow; the target page picks up any flash set before.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
