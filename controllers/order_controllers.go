package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// PlaceOrder -> checkout of the whole cart
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	user := currentUser(c)

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), user.UserID)
	if errors.Is(err, services.ErrEmptyCart) {
		utils.AddFlash(c, utils.FlashError, "Your cart is empty.")
		utils.Redirect(c, "/cart/")
		return
	}
	if err != nil {
		renderError(c, "cart", err)
		return
	}

	utils.InfoLogger.Printf("Order #%d placed by %s (total %s)", order.ID, user.Username, order.TotalAmount.StringFixed(2))
	utils.AddFlash(c, utils.FlashSuccess, "Order placed successfully!")
	utils.Redirect(c, "/")
}
