package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/app"
	"delizzia_backoffice/internal/handlers"
	"delizzia_backoffice/internal/middleware"
	"delizzia_backoffice/pkg/utils"
)

// New creates an engine with the standard middleware stack and every route.
func New(svc *app.Services, allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())
	engine.Use(middleware.Recovery())

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", middleware.RequestIDHeader}
	config.ExposeHeaders = []string{middleware.RequestIDHeader, "Content-Disposition"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	Setup(engine, svc)
	return engine
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, svc *app.Services) {
	// Initialize Handlers
	menuHandler := handlers.NewMenuHandler(svc.Menu)
	inventoryHandler := handlers.NewInventoryHandler(svc.Inventory, svc.Alerts)
	customerHandler := handlers.NewCustomerHandler(svc.Customers)
	orderHandler := handlers.NewOrderHandler(svc.Orders)
	purchaseHandler := handlers.NewPurchaseHandler(svc.Purchases)
	staffHandler := handlers.NewStaffHandler(svc.Staff)
	reportHandler := handlers.NewReportHandler(svc.Reports, svc.Dashboard)
	settingHandler := handlers.NewSettingHandler(svc.Settings)

	apiV1 := engine.Group("/api/v1")

	SetupMenuRoutes(apiV1, menuHandler)
	SetupInventoryRoutes(apiV1, inventoryHandler)
	SetupCustomerRoutes(apiV1, customerHandler)
	SetupOrderRoutes(apiV1, orderHandler)
	SetupPurchaseRoutes(apiV1, purchaseHandler)
	SetupStaffRoutes(apiV1, staffHandler)
	SetupScheduleRoutes(apiV1, staffHandler)
	SetupReportRoutes(apiV1, reportHandler)
	SetupDashboardRoutes(apiV1, reportHandler)
	SetupSettingsRoutes(apiV1, settingHandler)
}
