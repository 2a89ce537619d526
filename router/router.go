package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cafe-eden/pos-app/config"
	"github.com/cafe-eden/pos-app/controllers"
	"github.com/cafe-eden/pos-app/middlewares"
	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/services"
)

// SetupRouter wires all handlers. The returned engine is ready to run.
func SetupRouter(db *gorm.DB, orders *services.OrderService, bakong *services.BakongService, verifier *services.BakongVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	menuItemCtrl := controllers.NewMenuItemController(db)
	variantCtrl := controllers.NewMenuItemVariantController(db)
	ingredientCtrl := controllers.NewIngredientController(db)
	stockCtrl := controllers.NewStockController(db)
	recipeCtrl := controllers.NewRecipeController(db)
	discountCtrl := controllers.NewDiscountController(db)
	orderCtrl := controllers.NewOrderController(db, orders)
	paymentCtrl := controllers.NewPaymentController(db, orders)
	bakongCtrl := controllers.NewBakongController(db, bakong, verifier, orders)
	settingsCtrl := controllers.NewSettingsController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	bannerCtrl := controllers.NewBannerController(db)
	reportCtrl := controllers.NewReportController(db)

	maxAttempts, windowSec, cooldownSec := config.OrderRateLimit()
	orderLimiter := middlewares.NewOrderLimiter(maxAttempts, windowSec, cooldownSec)

	strictLimit := middlewares.NewStrictRateLimiter()
	publicLimit := middlewares.NewRateLimiter(120, 60).RateLimit()

	api := r.Group("/api/v1")

	// Public endpoints.
	api.POST("/register", strictLimit, userCtrl.Register)
	api.POST("/login", strictLimit, userCtrl.Login)
	api.GET("/banners", publicLimit, bannerCtrl.GetAllBanners)
	api.GET("/categories", publicLimit, categoryCtrl.GetAllCategories)
	api.GET("/menu-items", publicLimit, menuItemCtrl.GetAllMenuItems)
	api.GET("/menu-items/:id", publicLimit, menuItemCtrl.GetMenuItemByID)
	api.GET("/menu-items/:id/variants", publicLimit, variantCtrl.GetVariants)
	api.GET("/menu-items/:id/availability", publicLimit, menuItemCtrl.GetAvailability)

	// Provider webhook, authenticated by bill number knowledge.
	api.POST("/bakong/pushback", publicLimit, bakongCtrl.HandlePushback)

	auth := api.Group("")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/orders", orderLimiter.Limit(), orderCtrl.CreateOrder)
		auth.POST("/orders/reorder", orderLimiter.Limit(), orderCtrl.Reorder)
		auth.GET("/orders/:id", orderCtrl.GetOrderByID)
		auth.POST("/orders/:id/cancel", orderCtrl.CancelOrder)

		auth.POST("/bakong/qr", bakongCtrl.GenerateQR)
		auth.POST("/bakong/verify", bakongCtrl.VerifyLatest)
		auth.GET("/bakong/status/:bill_number", bakongCtrl.CheckStatus)
	}

	staff := api.Group("")
	staff.Use(middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleStaff, models.RoleAdmin, models.RoleSuperAdmin))
	{
		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.POST("/orders/:id/pay-cash", orderCtrl.PayCash)
		staff.GET("/payments", paymentCtrl.GetAllPayments)
		staff.GET("/payments/:id", paymentCtrl.GetPaymentByID)
		staff.POST("/payments", paymentCtrl.CreatePayment)
		staff.POST("/payments/:id/logs", paymentCtrl.AddPaymentLog)
		staff.GET("/stocks", stockCtrl.GetAllStocks)
		staff.GET("/stocks/low", stockCtrl.GetLowStocks)
		staff.GET("/notifications", notificationCtrl.GetAllNotifications)
		staff.PATCH("/notifications/:id/read", notificationCtrl.MarkAsRead)
	}

	admin := api.Group("")
	admin.Use(middlewares.AuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.DELETE("/users/:id", userCtrl.DeleteUser)

		admin.GET("/categories/:id", categoryCtrl.GetCategoryByID)
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		admin.POST("/menu-items", menuItemCtrl.CreateMenuItem)
		admin.PUT("/menu-items/:id", menuItemCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", menuItemCtrl.DeleteMenuItem)

		admin.POST("/menu-items/:id/variants", variantCtrl.CreateVariant)
		admin.PUT("/menu-items/:id/variants/:variant_id", variantCtrl.UpdateVariant)
		admin.DELETE("/menu-items/:id/variants/:variant_id", variantCtrl.DeleteVariant)

		admin.GET("/ingredients", ingredientCtrl.GetAllIngredients)
		admin.GET("/ingredients/:id", ingredientCtrl.GetIngredientByID)
		admin.POST("/ingredients", ingredientCtrl.CreateIngredient)
		admin.PUT("/ingredients/:id", ingredientCtrl.UpdateIngredient)
		admin.DELETE("/ingredients/:id", ingredientCtrl.DeleteIngredient)

		admin.PUT("/stocks", stockCtrl.UpsertStock)
		admin.PUT("/stocks/batch", stockCtrl.BatchUpsertStock)

		admin.GET("/recipes", recipeCtrl.GetAllRecipes)
		admin.POST("/recipes", recipeCtrl.CreateRecipe)
		admin.DELETE("/recipes/:id", recipeCtrl.DeleteRecipe)

		admin.GET("/discounts", discountCtrl.GetAllDiscounts)
		admin.POST("/discounts", discountCtrl.CreateDiscount)
		admin.PUT("/discounts/:id", discountCtrl.UpdateDiscount)
		admin.DELETE("/discounts/:id", discountCtrl.DeleteDiscount)

		admin.PATCH("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		admin.GET("/settings", settingsCtrl.GetAllSettings)
		admin.GET("/settings/:key", settingsCtrl.GetSettingByKey)
		admin.PUT("/settings", settingsCtrl.UpsertSetting)

		admin.POST("/notifications", notificationCtrl.CreateNotification)
		admin.DELETE("/notifications/:id", notificationCtrl.DeleteNotification)

		admin.POST("/banners", bannerCtrl.CreateBanner)
		admin.PUT("/banners/:id", bannerCtrl.UpdateBanner)
		admin.DELETE("/banners/:id", bannerCtrl.DeleteBanner)

		admin.GET("/reports/sales-summary", reportCtrl.GetSalesSummary)
		admin.GET("/reports/popular-items", reportCtrl.GetPopularItems)
		admin.GET("/reports/daily-revenue", reportCtrl.GetDailyRevenue)
	}

	return r
}
