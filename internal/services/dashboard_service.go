package services

import (
	"context"
	"encoding/json"
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	popularProductsLimit = 5
	lowStockThreshold    = 10
	salesReportDays      = 30
)

type DashboardMetrics struct {
	TotalProducts   int64                       `json:"totalProducts"`
	TotalOrders     int64                       `json:"totalOrders"`
	TotalRevenue    float64                     `json:"totalRevenue"`
	PopularProducts []repository.PopularProduct `json:"popularProducts"`
}

type DailySalesPoint struct {
	Date        string  `json:"date"`
	TotalAmount float64 `json:"totalAmount"`
}

type SalesReport struct {
	TotalOrders  int64             `json:"totalOrders"`
	TotalRevenue float64           `json:"totalRevenue"`
	DailySales   []DailySalesPoint `json:"dailySales"`
}

type DashboardService struct {
	repo        repository.ReportRepository
	log         *zap.SugaredLogger
	redisClient *redis.Client

	// now is swappable so report windows are deterministic under test.
	now func() time.Time
}

func NewDashboardService(r repository.ReportRepository, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{
		repo: r,
		log:  log,
		now:  time.Now,
	}
}

func (s *DashboardService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// Metrics aggregates the dashboard counters. Popular products rank by order
// count descending, top five, ties broken by product id.
func (s *DashboardService) Metrics(ctx context.Context) (*DashboardMetrics, error) {
	if cached, ok := s.fromCache(ctx, cacheKeyDashboard, &DashboardMetrics{}); ok {
		return cached.(*DashboardMetrics), nil
	}

	var m DashboardMetrics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountProducts(gctx)
		m.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountOrders(gctx)
		m.TotalOrders = n
		return err
	})
	g.Go(func() error {
		total, err := s.repo.SumRevenue(gctx)
		m.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		popular, err := s.repo.PopularProducts(gctx, popularProductsLimit)
		m.PopularProducts = popular
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if m.PopularProducts == nil {
		m.PopularProducts = []repository.PopularProduct{}
	}

	s.toCache(ctx, cacheKeyDashboard, &m)
	return &m, nil
}

// SalesReport returns order totals plus a fixed 30-point daily series
// covering today and the 29 preceding days, oldest first, zero-filled.
func (s *DashboardService) SalesReport(ctx context.Context) (*SalesReport, error) {
	if cached, ok := s.fromCache(ctx, cacheKeySalesReport, &SalesReport{}); ok {
		return cached.(*SalesReport), nil
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(salesReportDays - 1))

	var (
		report SalesReport
		totals []repository.DailyTotal
	)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.CountOrders(gctx)
		report.TotalOrders = n
		return err
	})
	g.Go(func() error {
		total, err := s.repo.SumRevenue(gctx)
		report.TotalRevenue = total
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.DailyTotals(gctx, start)
		totals = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Day] = t.Total
	}

	report.DailySales = make([]DailySalesPoint, 0, salesReportDays)
	for i := 0; i < salesReportDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		report.DailySales = append(report.DailySales, DailySalesPoint{
			Date:        day,
			TotalAmount: byDay[day],
		})
	}

	s.toCache(ctx, cacheKeySalesReport, &report)
	return &report, nil
}

func (s *DashboardService) LowInventory(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *DashboardService) fromCache(ctx context.Context, key string, out any) (any, bool) {
	if s.redisClient == nil {
		return nil, false
	}
	cached, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *DashboardService) toCache(ctx context.Context, key string, v any) {
	if s.redisClient == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		s.redisClient.Set(ctx, key, data, reportCacheTTL)
	}
}
