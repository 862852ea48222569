package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

type CartController struct {
	Cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{Cart: cart}
}

// AddToCart -> one more of the item, then back to the cart
func (cc *CartController) AddToCart(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	if err := cc.Cart.Add(c.Request.Context(), currentUser(c).UserID, itemID); err != nil {
		renderError(c, "cart", err)
		return
	}

	utils.AddFlash(c, utils.FlashSuccess, "Item added to cart!")
	utils.Redirect(c, "/cart/")
}

// ViewCart
func (cc *CartController) ViewCart(c *gin.Context) {
	view, err := cc.Cart.View(c.Request.Context(), currentUser(c).UserID)
	if err != nil {
		renderError(c, "cart", err)
		return
	}

	utils.RenderPage(c, http.StatusOK, "cart", "", gin.H{
		"cart_items":    view.Items,
		"total":         view.Total.StringFixed(2),
		"total_display": utils.FormatCurrency(view.Total),
	})
}

// RemoveFromCart only finds rows owned by the current user.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	cartID, ok := pathID(c, "cart_id")
	if !ok {
		return
	}

	if err := cc.Cart.Remove(c.Request.Context(), currentUser(c).UserID, cartID); err != nil {
		renderError(c, "cart", err)
		return
	}
	utils.Redirect(c, "/cart/")
}
