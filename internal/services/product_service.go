package services

import (
	"context"
	"encoding/json"
	"time"

	"inventory-api/internal/domain"
	rabbit "inventory-api/internal/infra/rabbitmq"
	"inventory-api/internal/metrics"
	"inventory-api/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ProductInput struct {
	ProductID     string
	Name          string
	Price         float64
	Rating        *float64
	StockQuantity int
	Category      string
}

type ProductService struct {
	repo        repository.ProductRepository
	publisher   rabbit.PublisherInterface
	metrics     *metrics.Registry
	log         *zap.SugaredLogger
	redisClient *redis.Client
}

func NewProductService(r repository.ProductRepository, pub rabbit.PublisherInterface, m *metrics.Registry, log *zap.SugaredLogger) *ProductService {
	return &ProductService{
		repo:      r,
		publisher: pub,
		metrics:   m,
		log:       log,
	}
}

func (s *ProductService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if in.Name == "" || in.Category == "" {
		return nil, &domain.ValidationError{Msg: "Product name and category are required."}
	}
	if in.Price < 0 || in.StockQuantity < 0 {
		return nil, &domain.ValidationError{Msg: "Price and stock quantity must be non-negative."}
	}

	if in.ProductID == "" {
		in.ProductID = uuid.NewString()
	}

	product := &domain.Product{
		ProductID:     in.ProductID,
		Name:          in.Name,
		Price:         in.Price,
		Rating:        in.Rating,
		StockQuantity: in.StockQuantity,
		Category:      in.Category,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.metrics.ProductsCreated.Inc()
	s.invalidateProductCache(ctx)

	go s.publishProductCreated(context.Background(), product)

	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, search, category string) ([]domain.Product, error) {
	// Only the unfiltered listing is cached; filtered reads go straight to
	// the store.
	cacheable := search == "" && category == "" && s.redisClient != nil

	if cacheable {
		if cached, err := s.redisClient.Get(ctx, cacheKeyProducts).Result(); err == nil {
			var products []domain.Product
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	products, err := s.repo.List(ctx, search, category)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(products); err == nil {
			s.redisClient.Set(ctx, cacheKeyProducts, data, productsCacheTTL)
		}
	}

	return products, nil
}

func (s *ProductService) publishProductCreated(ctx context.Context, product *domain.Product) {
	evt := domain.ProductCreatedEvent{
		ProductID:     product.ProductID,
		Name:          product.Name,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		Category:      product.Category,
	}
	if err := s.publisher.Publish(ctx, "product.created", evt); err != nil {
		s.log.Errorw("failed to publish product.created", "productId", product.ProductID, "error", err)
	}
}

func (s *ProductService) invalidateProductCache(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	if err := s.redisClient.Del(ctx, cacheKeyProducts, cacheKeyDashboard).Err(); err != nil {
		s.log.Warnw("failed to invalidate product cache", "error", err)
	}
}
