package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/pkg/utils"
)

// ErrRefreshInProgress is returned by a manual refresh while another one runs.
var ErrRefreshInProgress = errors.New("dashboard refresh already in progress")

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// DashboardService keeps the latest dashboard snapshot. At most one refresh
// runs at a time, whether scheduled or manual.
type DashboardService interface {
	GetSummary(ctx context.Context) (*models.DashboardSummary, error)
	Refresh(ctx context.Context) (*models.DashboardSummary, error)
	Start(spec string) error
	Stop()
}

type dashboardService struct {
	orderRepo repositories.OrderRepository
	alerts    AlertService
	staff     StaffService
	clock     Clock

	refreshMu sync.Mutex
	latest    atomic.Pointer[models.DashboardSummary]

	sched  *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(or repositories.OrderRepository, alerts AlertService, staff StaffService, clock Clock) DashboardService {
	ctx, cancel := context.WithCancel(context.Background())
	return &dashboardService{
		orderRepo: or,
		alerts:    alerts,
		staff:     staff,
		clock:     clock,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// GetSummary returns the latest snapshot, refreshing first if there is none yet.
func (s *dashboardService) GetSummary(ctx context.Context) (*models.DashboardSummary, error) {
	if snap := s.latest.Load(); snap != nil {
		return snap, nil
	}
	return s.Refresh(ctx)
}

func (s *dashboardService) Refresh(ctx context.Context) (*models.DashboardSummary, error) {
	if !s.refreshMu.TryLock() {
		return nil, ErrRefreshInProgress
	}
	defer s.refreshMu.Unlock()

	now := s.clock.Now()
	summary := &models.DashboardSummary{GeneratedAt: now}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		today := startOfDay(now, now.Location())
		todays := salesInPeriod(s.orderRepo.List(), today, today.AddDate(0, 0, 1))
		revenue := decimal.Zero
		for _, o := range todays {
			revenue = revenue.Add(rules.ComputeTotal(o.Items))
			if o.Status == models.OrderStatusDelivered {
				summary.CompletedOrders++
			}
		}
		for _, o := range s.orderRepo.List() {
			if !o.Status.IsFinal() {
				summary.ActiveOrders++
			}
		}
		summary.DailySales = revenue
		summary.AvgOrderValue = averageValue(revenue, len(todays))
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		summary.StockAlerts = len(s.alerts.GetActiveAlerts())
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		summary.StaffOnDuty = s.staff.CountOnDuty()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard refresh: %w", err)
	}
	s.latest.Store(summary)
	utils.LogDebug("Dashboard refreshed", map[string]interface{}{
		"daily_sales":   utils.FormatMoney(summary.DailySales),
		"active_orders": summary.ActiveOrders,
		"stock_alerts":  summary.StockAlerts,
	})
	return summary, nil
}

// Start refreshes once and then on every tick of spec.
func (s *dashboardService) Start(spec string) error {
	if _, err := s.Refresh(s.ctx); err != nil {
		return err
	}
	logger := cronLogger{}
	s.sched = cron.New(
		cron.WithLocation(s.clock.Now().Location()),
		cron.WithParser(cronParser),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	_, err := s.sched.AddFunc(spec, func() {
		if _, err := s.Refresh(s.ctx); err != nil {
			utils.LogWarn("Scheduled dashboard refresh skipped", map[string]interface{}{"reason": err.Error()})
		}
	})
	if err != nil {
		return fmt.Errorf("invalid dashboard refresh schedule %q: %w", spec, err)
	}
	s.sched.Start()
	utils.LogInfo("Dashboard refresher started", map[string]interface{}{"schedule": spec})
	return nil
}

// Stop cancels any running refresh and waits for it to return.
func (s *dashboardService) Stop() {
	s.cancel()
	if s.sched != nil {
		<-s.sched.Stop().Done()
	}
}

// cronLogger routes cron's own messages to the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	utils.LogDebug("cron: "+msg, pairs(keysAndValues))
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	utils.LogError(err, "cron: "+msg, pairs(keysAndValues))
}

func pairs(kv []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
