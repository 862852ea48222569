package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

type ContactController struct {
	Contact *services.ContactService
}

func NewContactController(contact *services.ContactService) *ContactController {
	return &ContactController{Contact: contact}
}

// ContactForm
func (cc *ContactController) ContactForm(c *gin.Context) {
	utils.RenderPage(c, http.StatusOK, "contact", "", nil)
}

// SubmitContact stores the message and returns to the form.
func (cc *ContactController) SubmitContact(c *gin.Context) {
	var in services.ContactInput
	if err := c.ShouldBind(&in); err != nil {
		utils.RenderPage(c, http.StatusBadRequest, "contact", err.Error(), nil)
		return
	}

	if _, err := cc.Contact.Submit(c.Request.Context(), in); err != nil {
		renderError(c, "contact", err)
		return
	}

	utils.AddFlash(c, utils.FlashSuccess, "Thank you! We will contact you soon.")
	utils.Redirect(c, "/contact/")
}
