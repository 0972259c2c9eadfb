package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-api/internal/domain"
	"inventory-api/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// CreateWithStockDecrement locks the product row for the duration of the
// transaction so the stock check and the decrement are one atomic unit; two
// racing creates against the last unit serialize on the lock and the loser
// sees the already-decremented stock.
func (r *orderRepo) CreateWithStockDecrement(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("product_id = ?", order.ProductID).
			First(&product).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}

		if product.StockQuantity < order.Quantity {
			return &domain.InsufficientStockError{
				Available: product.StockQuantity,
				Requested: order.Quantity,
			}
		}

		order.TotalPrice = product.Price * float64(order.Quantity)
		order.Status = domain.StatusPending

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Product{}).
			Where("product_id = ?", order.ProductID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", order.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("stock decrement affected %d rows for product %s", res.RowsAffected, order.ProductID)
		}

		product.StockQuantity -= order.Quantity
		order.Product = &product
		return nil
	})
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	o, err := r.FindByID(ctx, orderID)
	if err != nil || o == nil {
		return nil, err
	}

	// A same-status update affects zero rows in MySQL, so existence is
	// decided by the lookup above, not by RowsAffected.
	err = r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}

	o.Status = status
	return o, nil
}

func (r *orderRepo) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{}).Joins("Product")

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(orders.order_id) LIKE ? OR LOWER(Product.name) LIKE ? OR LOWER(Product.category) LIKE ?",
			like, like, like,
		)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Order
	err := q.Order("orders.created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
