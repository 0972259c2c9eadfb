package repository

import (
	"context"

	"inventory-api/internal/domain"
)

// OrderFilter narrows List results. Search matches orderId, product name and
// product category as a case-insensitive substring; Status is an exact match
// and empty means no filter.
type OrderFilter struct {
	Search string
	Status domain.OrderStatus
	Offset int
	Limit  int
}

type OrderRepository interface {
	// CreateWithStockDecrement inserts the order and decrements the product
	// stock inside one transaction. It fills in TotalPrice, Status and the
	// joined Product on success.
	CreateWithStockDecrement(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, int64, error)
}
