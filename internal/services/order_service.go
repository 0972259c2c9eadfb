package services

import (
	"context"
	"errors"
	"math"
	"time"

	"inventory-api/internal/domain"
	rabbit "inventory-api/internal/infra/rabbitmq"
	"inventory-api/internal/metrics"
	"inventory-api/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 50

	// statusAll disables the status filter on list queries.
	statusAll = "all"
)

type OrderService struct {
	repo        repository.OrderRepository
	publisher   rabbit.PublisherInterface
	metrics     *metrics.Registry
	log         *zap.SugaredLogger
	redisClient *redis.Client
}

func NewOrderService(r repository.OrderRepository, pub rabbit.PublisherInterface, m *metrics.Registry, log *zap.SugaredLogger) *OrderService {
	return &OrderService{
		repo:      r,
		publisher: pub,
		metrics:   m,
		log:       log,
	}
}

func (s *OrderService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// CreateOrder validates the request, then delegates the stock check, the
// order insert and the stock decrement to one repository transaction. The
// order either fully exists with stock consumed, or nothing changed.
func (s *OrderService) CreateOrder(ctx context.Context, productID string, quantity int) (*domain.Order, error) {
	if productID == "" || quantity <= 0 {
		return nil, &domain.ValidationError{
			Msg: "Product ID and quantity are required. Quantity must be positive.",
		}
	}

	order := &domain.Order{
		OrderID:   uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateWithStockDecrement(ctx, order); err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			s.metrics.OrdersRejected.Inc()
		}
		return nil, err
	}

	s.metrics.OrdersCreated.Inc()
	s.metrics.StockConsumed.Add(float64(quantity))
	s.invalidateReportCaches(ctx)

	go s.publishOrderCreated(context.Background(), order)

	return order, nil
}

// UpdateOrderStatus accepts any of the five statuses regardless of the
// current one, same-status updates included. No transition carries side
// effects; in particular, cancelling never restocks.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, NewInvalidStatusError(status)
	}

	order, err := s.repo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	s.metrics.StatusUpdates.Inc()
	go s.publishStatusChanged(context.Background(), order)

	return order, nil
}

type ListOrdersParams struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type OrdersPage struct {
	Orders     []domain.Order
	Pagination Pagination
}

func (s *OrderService) ListOrders(ctx context.Context, p ListOrdersParams) (*OrdersPage, error) {
	if p.Page < 1 {
		p.Page = defaultPage
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}

	f := repository.OrderFilter{
		Search: p.Search,
		Offset: (p.Page - 1) * p.Limit,
		Limit:  p.Limit,
	}
	if p.Status != "" && p.Status != statusAll {
		f.Status = domain.OrderStatus(p.Status)
	}

	orders, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return &OrdersPage{
		Orders: orders,
		Pagination: Pagination{
			CurrentPage: p.Page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNextPage: p.Page < totalPages,
			HasPrevPage: p.Page > 1,
		},
	}, nil
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:    order.OrderID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		CreatedAt:  order.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		s.log.Errorw("failed to publish order.created", "orderId", order.OrderID, "error", err)
	}
}

func (s *OrderService) publishStatusChanged(ctx context.Context, order *domain.Order) {
	evt := domain.OrderStatusChangedEvent{
		OrderID:   order.OrderID,
		Status:    order.Status,
		ChangedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "order.status_changed", evt); err != nil {
		s.log.Errorw("failed to publish order.status_changed", "orderId", order.OrderID, "error", err)
	}
}

func (s *OrderService) invalidateReportCaches(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	// The products list cache carries stockQuantity, so an order create
	// stales it along with the report caches.
	if err := s.redisClient.Del(ctx, cacheKeySalesReport, cacheKeyDashboard, cacheKeyProducts).Err(); err != nil {
		s.log.Warnw("failed to invalidate report caches", "error", err)
	}
}
