package router

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/config"
	"github.com/inamrestro/restaurant-app/controllers"
	"github.com/inamrestro/restaurant-app/feed"
	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/middlewares"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	DB           *gorm.DB
	Config       *config.Config
	Sessions     *utils.SessionManager
	Hub          *feed.Hub
	Publisher    feed.Publisher
	Metrics      *metrics.Metrics
	LoginLimiter *middlewares.RateLimiter
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Metrics(d.Metrics))
	r.Use(middlewares.SecurityHeaders(d.Config.CookieSecure))
	r.Use(middlewares.CORSMiddlewares(d.Config.CORSOrigins))
	r.Use(middlewares.Identity(d.Sessions))
	r.Use(utils.FlashMiddleware(d.Config.SessionSecret, d.Config.CookieSecure))

	pub := d.Publisher
	if pub == nil {
		pub = feed.Nop{}
	}
	limiter := d.LoginLimiter
	if limiter == nil {
		limiter = middlewares.NewRateLimiter(d.Config.LoginRatePerMin, 5)
	}

	// Services
	catalogSvc := services.NewCatalogService(d.DB)
	cartSvc := services.NewCartService(d.DB, d.Metrics)
	orderSvc := services.NewOrderService(d.DB, pub, d.Metrics)
	contactSvc := services.NewContactService(d.DB, pub, d.Metrics)
	authSvc := services.NewAuthService(d.DB, d.Metrics)
	adminSvc := services.NewAdminService(d.DB, pub)

	// Controllers
	catalogCtrl := controllers.NewCatalogController(catalogSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	contactCtrl := controllers.NewContactController(contactSvc)
	userCtrl := controllers.NewUserController(authSvc, d.Sessions, d.Config.CookieSecure)
	adminCtrl := controllers.NewAdminController(adminSvc, d.Config.MediaRoot)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	media := r.Group("/media")
	media.Use(imagesOnly())
	media.Static("/", d.Config.MediaRoot)

	r.GET("/", catalogCtrl.Home)
	r.GET("/category/:category_id/", catalogCtrl.MenuItems)

	r.GET("/contact/", contactCtrl.ContactForm)
	r.POST("/contact/", contactCtrl.SubmitContact)

	r.GET("/signup/", userCtrl.SignupForm)
	r.POST("/signup/", limiter.RateLimit(), userCtrl.Signup)
	r.GET("/login/", userCtrl.LoginForm)
	r.POST("/login/", limiter.RateLimit(), userCtrl.Login)
	r.GET("/logout/", userCtrl.Logout)

	// ----------------------------------------------------------------
	//                      CUSTOMER ROUTES
	// ----------------------------------------------------------------
	customer := r.Group("/")
	customer.Use(middlewares.LoginRequired())
	{
		customer.GET("/add-to-cart/:item_id/", cartCtrl.AddToCart)
		customer.POST("/add-to-cart/:item_id/", cartCtrl.AddToCart)
		customer.GET("/cart/", cartCtrl.ViewCart)
		customer.GET("/remove/:cart_id/", cartCtrl.RemoveFromCart)
		customer.POST("/remove/:cart_id/", cartCtrl.RemoveFromCart)
		customer.GET("/place-order/", orderCtrl.PlaceOrder)
		customer.POST("/place-order/", orderCtrl.PlaceOrder)
		customer.GET("/profile/", userCtrl.Profile)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.StaffRequired())
	{
		// MENU CATEGORIES
		admin.GET("/categories", adminCtrl.GetAllCategories)
		admin.POST("/categories", adminCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", adminCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", adminCtrl.DeleteCategory)

		// MENUS
		admin.GET("/menus", adminCtrl.GetAllMenus)
		admin.POST("/menus", adminCtrl.CreateMenu)
		admin.PATCH("/menus/:menu_id", adminCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", adminCtrl.DeleteMenu)

		// ORDERS (read only)
		admin.GET("/orders", adminCtrl.GetAllOrders)
		admin.GET("/orders/:order_id", adminCtrl.GetOrderByID)

		admin.GET("/contact-messages", adminCtrl.GetContactMessages)

		if d.Hub != nil {
			feedCtrl := controllers.NewFeedController(d.Hub, d.Config.CORSOrigins)
			admin.GET("/feed", feedCtrl.Stream)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RenderPage(c, http.StatusNotFound, "not_found", "Page not found", nil)
	})

	return r
}

// imagesOnly refuses anything under /media that is not an image.
func imagesOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch strings.ToLower(filepath.Ext(c.Request.URL.Path)) {
		case ".jpg", ".jpeg", ".png", ".gif", ".webp":
			c.Next()
		default:
			c.AbortWithStatus(http.StatusForbidden)
		}
	}
}
