package services

import (
	"sort"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/pkg/utils"
)

// AlertSeverity ranks a stock alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
)

// AlertKind says what triggered an alert.
type AlertKind string

const (
	AlertStock  AlertKind = "stock"
	AlertExpiry AlertKind = "expiry"
)

// StockAlert flags an inventory item that needs attention.
type StockAlert struct {
	ItemID       string               `json:"item_id"`
	ItemName     string               `json:"item_name"`
	Kind         AlertKind            `json:"kind"`
	Severity     AlertSeverity        `json:"severity"`
	Status       rules.StockStatus    `json:"status"`
	ExpiryState  rules.ExpiryState    `json:"expiry_state"`
	CurrentStock int                  `json:"current_stock"`
	MinStock     int                  `json:"min_stock"`
	Unit         models.InventoryUnit `json:"unit"`
	RaisedAt     time.Time            `json:"raised_at"`
}

const recentAlertLimit = 50

// AlertService derives alerts from inventory and keeps the ones raised by
// recent stock movements.
type AlertService interface {
	GetActiveAlerts() []StockAlert
	GetRecentAlerts() []StockAlert
	Close() error
}

type alertService struct {
	inventoryRepo repositories.InventoryRepository
	bus           EventBus.Bus
	clock         Clock
	expiry        rules.ExpiryWindow

	mu     sync.Mutex
	recent []StockAlert
}

// NewAlertService subscribes to stock changes on bus.
func NewAlertService(repo repositories.InventoryRepository, bus EventBus.Bus, clock Clock, expiry rules.ExpiryWindow) (AlertService, error) {
	s := &alertService{inventoryRepo: repo, bus: bus, clock: clock, expiry: expiry}
	if err := bus.Subscribe(TopicStockChanged, s.onStockChanged); err != nil {
		return nil, err
	}
	return s, nil
}

// stockAlerts returns the alerts item raises today: at most one for stock
// and one for expiry.
func stockAlerts(item models.InventoryItem, expiry rules.ExpiryWindow, now time.Time) []StockAlert {
	status := rules.InventoryStatus(item)
	exp := expiry.State(item.ExpiryDate.Ptr(), now)
	base := StockAlert{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Status:       status,
		ExpiryState:  exp,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		Unit:         item.Unit,
		RaisedAt:     now,
	}
	var alerts []StockAlert
	switch status {
	case rules.StockOut:
		a := base
		a.Kind, a.Severity = AlertStock, SeverityHigh
		alerts = append(alerts, a)
	case rules.StockLow:
		a := base
		a.Kind, a.Severity = AlertStock, SeverityMedium
		alerts = append(alerts, a)
	}
	switch exp {
	case rules.ExpiryExpired:
		a := base
		a.Kind, a.Severity = AlertExpiry, SeverityHigh
		alerts = append(alerts, a)
	case rules.ExpiryExpiringSoon:
		a := base
		a.Kind, a.Severity = AlertExpiry, SeverityMedium
		alerts = append(alerts, a)
	}
	return alerts
}

// activeAlerts lists every current alert, high severity first.
func activeAlerts(items []models.InventoryItem, expiry rules.ExpiryWindow, now time.Time) []StockAlert {
	alerts := []StockAlert{}
	for _, item := range items {
		alerts = append(alerts, stockAlerts(item, expiry, now)...)
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity == SeverityHigh && alerts[j].Severity != SeverityHigh
	})
	return alerts
}

func (s *alertService) GetActiveAlerts() []StockAlert {
	return activeAlerts(s.inventoryRepo.List(), s.expiry, s.clock.Now())
}

func (s *alertService) GetRecentAlerts() []StockAlert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StockAlert, len(s.recent))
	copy(out, s.recent)
	return out
}

func (s *alertService) onStockChanged(ev StockChangedEvent) {
	if ev.Movement.QuantityChanged >= 0 {
		return
	}
	for _, a := range stockAlerts(ev.Item, s.expiry, s.clock.Now()) {
		if a.Kind != AlertStock {
			continue
		}
		utils.LogWarn("Stock alert raised", map[string]interface{}{
			"item_id":       a.ItemID,
			"item_name":     a.ItemName,
			"severity":      a.Severity,
			"current_stock": a.CurrentStock,
			"min_stock":     a.MinStock,
			"stock_level":   utils.FormatPercent(rules.StockPercentage(ev.Item.CurrentStock, ev.Item.MaxStock)),
		})
		s.mu.Lock()
		s.recent = append(s.recent, a)
		if len(s.recent) > recentAlertLimit {
			s.recent = s.recent[len(s.recent)-recentAlertLimit:]
		}
		s.mu.Unlock()
	}
}

func (s *alertService) Close() error {
	return s.bus.Unsubscribe(TopicStockChanged, s.onStockChanged)
}
