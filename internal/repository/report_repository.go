package repository

import (
	"context"
	"time"

	"inventory-api/internal/domain"
)

// DailyTotal is one day's summed order revenue. Day is YYYY-MM-DD.
type DailyTotal struct {
	Day   string  `gorm:"column:day"`
	Total float64 `gorm:"column:total"`
}

// PopularProduct is a product ranked by how many orders reference it.
type PopularProduct struct {
	ProductID  string  `json:"productId" gorm:"column:product_id"`
	Name       string  `json:"name" gorm:"column:name"`
	Price      float64 `json:"price" gorm:"column:price"`
	Category   string  `json:"category" gorm:"column:category"`
	OrderCount int64   `json:"orderCount" gorm:"column:order_count"`
}

type ReportRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	// DailyTotals returns per-day revenue for orders created at or after
	// since. Days with no orders are absent; callers zero-fill.
	DailyTotals(ctx context.Context, since time.Time) ([]DailyTotal, error)
	PopularProducts(ctx context.Context, limit int) ([]PopularProduct, error)
	LowStock(ctx context.Context, threshold int) ([]domain.Product, error)
}
