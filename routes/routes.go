package routes

import (
	"github.com/Govind-619/CocoMart/config"
	"github.com/Govind-619/CocoMart/controllers"
	"github.com/Govind-619/CocoMart/middleware"
	"github.com/Govind-619/CocoMart/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(ctl *controllers.Controller, cfg *config.Config, rl *utils.RateLimiter) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(utils.SecurityHeadersMiddleware())
	if rl != nil {
		router.Use(utils.RateLimitMiddleware(rl))
	}

	router.GET("/health", ctl.Health)
	router.GET("/ws", ctl.ServeWS)

	initUserRoutes(router, ctl)
	initAdminRoutes(router, ctl)
	initVendorRoutes(router, ctl)
	initDriverRoutes(router, ctl)

	return router
}

func initUserRoutes(r *gin.Engine, ctl *controllers.Controller) {
	users := r.Group("/users")
	{
		users.POST("/register", ctl.Register)
		users.POST("/login", ctl.Login)
	}
}

func initAdminRoutes(r *gin.Engine, ctl *controllers.Controller) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(ctl.Identity()), middleware.AdminOnly())
	{
		admin.GET("/users", ctl.GetUsers)
		admin.POST("/users", ctl.CreateUser)
		admin.PUT("/users/:id", ctl.UpdateUser)
		admin.DELETE("/users/:id", ctl.DeleteUser)
		admin.GET("/drivers", ctl.GetDrivers)

		admin.GET("/orders", ctl.GetOrders)
		admin.POST("/assign-delivery", ctl.AssignDelivery)

		admin.GET("/payments", ctl.GetPayments)
		admin.GET("/payments/export", ctl.ExportPayments)
		admin.PUT("/payments/:paymentId", ctl.UpdatePayment)

		admin.GET("/coconuts", ctl.GetCoconuts)
		admin.POST("/coconuts", ctl.CreateCoconut)
		admin.PUT("/coconuts/:id", ctl.UpdateCoconut)
		admin.DELETE("/coconuts/:id", ctl.DeleteCoconut)
	}
}

func initVendorRoutes(r *gin.Engine, ctl *controllers.Controller) {
	vendor := r.Group("/vendor")
	vendor.Use(middleware.AuthMiddleware(ctl.Identity()), middleware.VendorOnly())
	{
		vendor.GET("/coconuts", ctl.GetAvailableCoconuts)
		vendor.POST("/order", ctl.PlaceOrder)
		vendor.GET("/orders/:vendorId", middleware.SelfOnly("vendorId"), ctl.GetVendorOrders)
		vendor.GET("/orders/:vendorId/:orderId/invoice", middleware.SelfOnly("vendorId"), ctl.DownloadInvoice)
		vendor.POST("/pay", ctl.MakePayment)
		vendor.POST("/create-checkout-session", ctl.CreateCheckoutSession)
		vendor.POST("/verify-payment", ctl.VerifyPayment)
	}
}

func initDriverRoutes(r *gin.Engine, ctl *controllers.Controller) {
	driver := r.Group("/driver")
	driver.Use(middleware.AuthMiddleware(ctl.Identity()), middleware.DriverOnly())
	{
		driver.GET("/assigned-orders", ctl.GetAssignedOrders)
		driver.PUT("/update-status/:orderId", ctl.UpdateDeliveryStatus)
	}
}
