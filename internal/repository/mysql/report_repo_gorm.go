package mysql

import (
	"context"
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"gorm.io/gorm"
)

type reportRepo struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) repository.ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&n).Error
	return n, err
}

func (r *reportRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error
	return n, err
}

func (r *reportRepo) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error
	return total, err
}

func (r *reportRepo) DailyTotals(ctx context.Context, since time.Time) ([]repository.DailyTotal, error) {
	var out []repository.DailyTotal
	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS day, SUM(total_price) AS total").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportRepo) PopularProducts(ctx context.Context, limit int) ([]repository.PopularProduct, error) {
	var out []repository.PopularProduct
	err := r.db.WithContext(ctx).Table("orders").
		Select("products.product_id, products.name, products.price, products.category, COUNT(orders.order_id) AS order_count").
		Joins("JOIN products ON products.product_id = orders.product_id").
		Group("products.product_id, products.name, products.price, products.category").
		Order("order_count DESC, products.product_id ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *reportRepo) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.WithContext(ctx).
		Where("stock_quantity < ?", threshold).
		Order("stock_quantity ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
