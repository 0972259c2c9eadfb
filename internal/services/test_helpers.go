package services

import (
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/metrics"
	"inventory-api/internal/mocks"

	"go.uber.org/zap"
)

func newTestOrderService(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) *OrderService {
	return NewOrderService(repo, pub, metrics.NewRegistry(), zap.NewNop().Sugar())
}

func newTestProductService(repo *mocks.MockProductRepository, pub *mocks.MockPublisher) *ProductService {
	return NewProductService(repo, pub, metrics.NewRegistry(), zap.NewNop().Sugar())
}

func newTestDashboardService(repo *mocks.MockReportRepository) *DashboardService {
	return NewDashboardService(repo, zap.NewNop().Sugar())
}

func CreateMockProduct(id, name string, price float64, stock int, category string) *domain.Product {
	return &domain.Product{
		ProductID:     id,
		Name:          name,
		Price:         price,
		StockQuantity: stock,
		Category:      category,
		CreatedAt:     time.Now(),
	}
}

func CreateMockOrder(id, productID string, quantity int, totalPrice float64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		OrderID:    id,
		ProductID:  productID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Status:     status,
		CreatedAt:  time.Now(),
	}
}

const (
	TestProductID       = "3f6c1fd0-5f6e-4d24-9d7b-0a4b6a4a2f01"
	TestOrderID         = "9a1d2e4c-7b3f-4e8a-8c5d-1f2a3b4c5d6e"
	TestProductName     = "Wireless Mouse"
	TestProductCategory = "Electronics"
	TestProductPrice    = float64(50)
	TestProductStock    = 3
)
