// Package app wires repositories and services over one dataset.
package app

import (
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"

	"delizzia_backoffice/internal/config"
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/mutators"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/services"
	"delizzia_backoffice/internal/validation"
)

// Options control how services are built.
type Options struct {
	Settings                config.Settings
	Location                *time.Location
	NodeID                  int64
	StrictStatusTransitions bool
	// Clock overrides the system clock, mainly for tests.
	Clock services.Clock
}

// Services holds every service the back office exposes.
type Services struct {
	Settings config.Settings

	Menu      services.MenuService
	Inventory services.InventoryService
	Alerts    services.AlertService
	Customers services.CustomerService
	Orders    services.OrderService
	Purchases services.PurchaseService
	Staff     services.StaffService
	Reports   services.ReportService
	Dashboard services.DashboardService
}

// New builds the services over ds.
func New(ds *database.Dataset, opts Options) (*Services, error) {
	ids, err := mutators.NewSnowflakeIDs(opts.NodeID)
	if err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = services.NewSystemClock(opts.Location)
	}
	settings := opts.Settings
	bus := EventBus.New()
	v := validation.New()
	policy := services.StatusPolicy{Strict: opts.StrictStatusTransitions}

	// Initialize Repositories
	menuRepo := repositories.NewMenuRepository(ds, ids)
	inventoryRepo := repositories.NewInventoryRepository(ds, ids)
	customerRepo := repositories.NewCustomerRepository(ds, ids)
	orderRepo := repositories.NewOrderRepository(ds, ids)
	purchaseRepo := repositories.NewPurchaseRepository(ds, ids)
	staffRepo := repositories.NewStaffRepository(ds, ids)
	scheduleRepo := repositories.NewScheduleRepository(ds, ids)

	// Initialize Services
	alerts, err := services.NewAlertService(inventoryRepo, bus, clock, settings.Expiry)
	if err != nil {
		return nil, fmt.Errorf("could not start stock alerts: %w", err)
	}
	staff := services.NewStaffService(staffRepo, scheduleRepo, v, clock)
	return &Services{
		Settings: settings,
		Menu:     services.NewMenuService(menuRepo, v, settings.Margin),
		Inventory: services.NewInventoryService(inventoryRepo, v, bus, clock, settings.Expiry,
			settings.Reorder.LeadTimeDays, settings.Reorder.UsageWindowDays),
		Alerts:    alerts,
		Customers: services.NewCustomerService(customerRepo, v, settings.Insights, clock),
		Orders:    services.NewOrderService(orderRepo, menuRepo, v, policy, clock),
		Purchases: services.NewPurchaseService(purchaseRepo, v, policy, clock),
		Staff:     staff,
		Reports: services.NewReportService(orderRepo, inventoryRepo, clock, settings.Expiry,
			settings.Forecast.HistoryDays, settings.Forecast.Horizon),
		Dashboard: services.NewDashboardService(orderRepo, alerts, staff, clock),
	}, nil
}

// Close stops the dashboard refresher and detaches stock alerts.
func (s *Services) Close() error {
	s.Dashboard.Stop()
	return s.Alerts.Close()
}
