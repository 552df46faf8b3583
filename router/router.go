package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/controllers"
	"github.com/officeeats/cafeteria-app/middlewares"
	"github.com/officeeats/cafeteria-app/models"
	"github.com/officeeats/cafeteria-app/services"
)

// SetupRouter wires the HTTP surface: public auth routes, authenticated
// employee routes, and the admin group.
func SetupRouter(db *gorm.DB, carts *services.CartManager, orders *services.OrderService, stats *services.StatsService, notifier *services.Notifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := controllers.NewAuthController(db, notifier)
	menuCtrl := controllers.NewMenuController(db, stats)
	cartCtrl := controllers.NewCartController(db, carts)
	orderCtrl := controllers.NewOrderController(db, orders, stats)
	adminCtrl := controllers.NewAdminController(db, stats)
	notificationCtrl := controllers.NewNotificationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.POST("/auth/register", authCtrl.Register)
	r.POST("/auth/otp/verify", authCtrl.VerifyOTP)
	r.POST("/auth/otp/resend", authCtrl.ResendOTP)
	r.POST("/auth/login", authCtrl.Login)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", authCtrl.GetProfile)

		auth.GET("/menus", menuCtrl.BrowseMenus)
		auth.GET("/menus/:menu_id", menuCtrl.GetMenuByID)

		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:menu_id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:menu_id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		auth.POST("/orders", orderCtrl.PlaceOrder)
		auth.GET("/orders", orderCtrl.GetMyOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		auth.GET("/ws", controllers.EventsHandler)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/menus", menuCtrl.GetAllMenus)
		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id/advance", orderCtrl.AdvanceOrder)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/dashboard", adminCtrl.GetDashboard)
		admin.GET("/notifications", notificationCtrl.GetAllNotifications)
	}

	return r
}
