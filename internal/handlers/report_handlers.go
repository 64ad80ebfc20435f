package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/export"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
)

// ReportHandler holds the report and dashboard services.
type ReportHandler struct {
	reportService    services.ReportService
	dashboardService services.DashboardService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService, ds services.DashboardService) *ReportHandler {
	return &ReportHandler{reportService: rs, dashboardService: ds}
}

func (h *ReportHandler) respondSales(c *gin.Context, op, filename string, report *models.SalesReport, err error) {
	if err != nil {
		respondServiceError(c, op, err, "Failed to build sales report.")
		return
	}
	respondReport(c, op, filename, report,
		func(w io.Writer) error { return export.SalesCSV(w, report) },
		func(w io.Writer) error { return export.SalesXLSX(w, report) },
	)
}

// GetDailySalesReport handles the sales report for ?date=, today when omitted
func (h *ReportHandler) GetDailySalesReport(c *gin.Context) {
	report, err := h.reportService.GetDailySalesReport(c.Query("date"))
	h.respondSales(c, "GetDailySalesReport", "sales-daily", report, err)
}

// GetWeeklySalesReport handles the seven days starting at ?start=
func (h *ReportHandler) GetWeeklySalesReport(c *gin.Context) {
	report, err := h.reportService.GetWeeklySalesReport(c.Query("start"))
	h.respondSales(c, "GetWeeklySalesReport", "sales-weekly", report, err)
}

// GetMonthlySalesReport handles the month given as ?month=YYYY-MM
func (h *ReportHandler) GetMonthlySalesReport(c *gin.Context) {
	report, err := h.reportService.GetMonthlySalesReport(c.Query("month"))
	h.respondSales(c, "GetMonthlySalesReport", "sales-monthly", report, err)
}

func (h *ReportHandler) GetInventoryReport(c *gin.Context) {
	report := h.reportService.GetInventoryReport()
	respondReport(c, "GetInventoryReport", "inventory", report,
		func(w io.Writer) error { return export.InventoryCSV(w, report) },
		func(w io.Writer) error { return export.InventoryXLSX(w, report) },
	)
}

// GetSalesForecast projects daily revenue from recent history
func (h *ReportHandler) GetSalesForecast(c *gin.Context) {
	forecast, err := h.reportService.GetSalesForecast()
	if err != nil {
		respondServiceError(c, "GetSalesForecast", err, "Failed to build sales forecast.")
		return
	}
	respondReport(c, "GetSalesForecast", "sales-forecast", forecast,
		func(w io.Writer) error { return export.ForecastCSV(w, forecast) },
		func(w io.Writer) error { return export.ForecastXLSX(w, forecast) },
	)
}

// GetDashboardSummary returns the cached dashboard figures. ?refresh=true
// recomputes them first.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	var (
		summary *models.DashboardSummary
		err     error
	)
	if c.Query("refresh") == "true" {
		summary, err = h.dashboardService.Refresh(c.Request.Context())
	} else {
		summary, err = h.dashboardService.GetSummary(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, "GetDashboardSummary", err, "Failed to load dashboard summary.")
		return
	}
	c.JSON(http.StatusOK, summary)
}
