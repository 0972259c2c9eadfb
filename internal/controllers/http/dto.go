package http

import (
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/services"
)

type CreateOrderRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreateProductRequest struct {
	ProductID     string   `json:"productId"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Rating        *float64 `json:"rating"`
	StockQuantity int      `json:"stockQuantity"`
	Category      string   `json:"category"`
}

// ProductSummary is the denormalized product slice embedded in order
// responses: live name/price/category, read at response time.
type ProductSummary struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type OrderResponse struct {
	OrderID    string             `json:"orderId"`
	ProductID  string             `json:"productId"`
	Quantity   int                `json:"quantity"`
	TotalPrice float64            `json:"totalPrice"`
	Status     domain.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	Product    *ProductSummary    `json:"product,omitempty"`
}

type ListOrdersResponse struct {
	Orders     []OrderResponse     `json:"orders"`
	Pagination services.Pagination `json:"pagination"`
}

func toOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:    o.OrderID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
	if o.Product != nil {
		resp.Product = &ProductSummary{
			Name:     o.Product.Name,
			Price:    o.Product.Price,
			Category: o.Product.Category,
		}
	}
	return resp
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}
