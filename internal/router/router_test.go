package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/app"
	"delizzia_backoffice/internal/config"
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	ds, err := database.LoadSeed("")
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	svc, err := app.New(ds, app.Options{Settings: config.DefaultSettings(), Location: time.UTC, NodeID: 1})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return New(svc, []string{"http://localhost:3000"})
}

func TestRoutesRegistered(t *testing.T) {
	engine := newEngine(t)
	registered := map[string]bool{}
	for _, r := range engine.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /ping",
		"GET /api/v1/menu-items/summary",
		"PATCH /api/v1/menu-items/:id/availability",
		"POST /api/v1/inventory/:id/adjust",
		"GET /api/v1/inventory/reorder",
		"POST /api/v1/customers/:id/orders",
		"GET /api/v1/orders/:id/profitability",
		"PATCH /api/v1/purchases/:id/status",
		"GET /api/v1/staff/payroll",
		"GET /api/v1/schedule/week",
		"GET /api/v1/reports/forecast",
		"GET /api/v1/dashboard",
		"GET /api/v1/options",
	} {
		if !registered[want] {
			t.Errorf("route %s not registered", want)
		}
	}
}

func TestMiddlewareStack(t *testing.T) {
	engine := newEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu-items", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d", w.Code)
	}
}
