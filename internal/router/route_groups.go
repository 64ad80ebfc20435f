package router

import (
	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/handlers"
)

// SetupMenuRoutes sets up the menu routes.
func SetupMenuRoutes(apiGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := apiGroup.Group("/menu-items")
	{
		menuRoutes.POST("", menuHandler.CreateMenuItem)
		menuRoutes.GET("", menuHandler.GetMenuItems)
		menuRoutes.GET("/summary", menuHandler.GetMenuSummary)
		menuRoutes.GET("/:id", menuHandler.GetMenuItemByID)
		menuRoutes.PUT("/:id", menuHandler.UpdateMenuItem)
		menuRoutes.PATCH("/:id/availability", menuHandler.ToggleAvailability)
		menuRoutes.GET("/:id/pricing", menuHandler.GetMenuPricing)
		menuRoutes.DELETE("/:id", menuHandler.DeleteMenuItem)
	}
}

// SetupInventoryRoutes sets up stock items, movements, alerts and reorder suggestions.
func SetupInventoryRoutes(apiGroup *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventoryRoutes := apiGroup.Group("/inventory")
	{
		inventoryRoutes.POST("", inventoryHandler.CreateInventoryItem)
		inventoryRoutes.GET("", inventoryHandler.GetInventoryItems)
		inventoryRoutes.GET("/movements", inventoryHandler.GetMovements)
		inventoryRoutes.GET("/alerts", inventoryHandler.GetAlerts)
		inventoryRoutes.GET("/reorder", inventoryHandler.GetReorderPlan)
		inventoryRoutes.GET("/:id", inventoryHandler.GetInventoryItemByID)
		inventoryRoutes.PUT("/:id", inventoryHandler.UpdateInventoryItem)
		inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteInventoryItem)
		inventoryRoutes.POST("/:id/adjust", inventoryHandler.AdjustStock)
		inventoryRoutes.GET("/:id/movements", inventoryHandler.GetItemMovements)
	}
}

// SetupCustomerRoutes sets up the customer routes.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := apiGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
		customerRoutes.POST("/:id/orders", customerHandler.RecordCustomerOrder)
	}
}

// SetupOrderRoutes sets up the order routes.
func SetupOrderRoutes(apiGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler) {
	orderRoutes := apiGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
		orderRoutes.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
		orderRoutes.GET("/:id/profitability", orderHandler.GetOrderProfitability)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupPurchaseRoutes sets up the supplier purchase routes.
func SetupPurchaseRoutes(apiGroup *gin.RouterGroup, purchaseHandler *handlers.PurchaseHandler) {
	purchaseRoutes := apiGroup.Group("/purchases")
	{
		purchaseRoutes.POST("", purchaseHandler.CreatePurchase)
		purchaseRoutes.GET("", purchaseHandler.GetPurchases)
		purchaseRoutes.GET("/:id", purchaseHandler.GetPurchaseByID)
		purchaseRoutes.PUT("/:id", purchaseHandler.UpdatePurchase)
		purchaseRoutes.PATCH("/:id/status", purchaseHandler.UpdatePurchaseStatus)
		purchaseRoutes.DELETE("/:id", purchaseHandler.DeletePurchase)
	}
}

// SetupStaffRoutes sets up the staff routes.
func SetupStaffRoutes(apiGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := apiGroup.Group("/staff")
	{
		staffRoutes.POST("", staffHandler.CreateStaffMember)
		staffRoutes.GET("", staffHandler.GetStaffMembers)
		staffRoutes.GET("/payroll", staffHandler.GetPayroll)
		staffRoutes.GET("/:id", staffHandler.GetStaffMemberByID)
		staffRoutes.PUT("/:id", staffHandler.UpdateStaffMember)
		staffRoutes.PATCH("/:id/status", staffHandler.UpdateStaffStatus)
		staffRoutes.DELETE("/:id", staffHandler.DeleteStaffMember)
	}
}

// SetupScheduleRoutes sets up the shift routes.
func SetupScheduleRoutes(apiGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	scheduleRoutes := apiGroup.Group("/schedule")
	{
		scheduleRoutes.POST("", staffHandler.CreateShift)
		scheduleRoutes.GET("", staffHandler.GetShifts)
		scheduleRoutes.GET("/week", staffHandler.GetWeekSchedule)
		scheduleRoutes.GET("/:id", staffHandler.GetShiftByID)
		scheduleRoutes.PUT("/:id", staffHandler.UpdateShift)
		scheduleRoutes.DELETE("/:id", staffHandler.DeleteShift)
	}
}

// SetupReportRoutes sets up the report routes. Each accepts ?format=json|csv|xlsx.
func SetupReportRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := apiGroup.Group("/reports")
	{
		reportRoutes.GET("/daily", reportHandler.GetDailySalesReport)
		reportRoutes.GET("/weekly", reportHandler.GetWeeklySalesReport)
		reportRoutes.GET("/monthly", reportHandler.GetMonthlySalesReport)
		reportRoutes.GET("/forecast", reportHandler.GetSalesForecast)
		reportRoutes.GET("/inventory", reportHandler.GetInventoryReport)
	}
}

func SetupDashboardRoutes(apiGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	apiGroup.GET("/dashboard", reportHandler.GetDashboardSummary)
}

func SetupSettingsRoutes(apiGroup *gin.RouterGroup, settingHandler *handlers.SettingHandler) {
	apiGroup.GET("/options", settingHandler.GetOptions)
	apiGroup.GET("/settings", settingHandler.GetSettings)
}
