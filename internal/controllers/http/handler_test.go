package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/metrics"
	"inventory-api/internal/mocks"
	"inventory-api/internal/repository"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestRouter(orderRepo *mocks.MockOrderRepository, productRepo *mocks.MockProductRepository, reportRepo *mocks.MockReportRepository, pub *mocks.MockPublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	reg := metrics.NewRegistry()

	orders := services.NewOrderService(orderRepo, pub, reg, log)
	products := services.NewProductService(productRepo, pub, reg, log)
	dashboard := services.NewDashboardService(reportRepo, log)

	r := gin.New()
	NewHandler(orders, products, dashboard, log).RegisterRoutes(r)
	return r
}

func TestHandler_CreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks.MockOrderRepository, *mocks.MockPublisher)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "malformed json",
			body:           "{not-json",
			setupMocks:     func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid request body",
		},
		{
			name:           "missing quantity",
			body:           `{"productId": "p-1"}`,
			setupMocks:     func(*mocks.MockOrderRepository, *mocks.MockPublisher) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Product ID and quantity are required. Quantity must be positive.",
		},
		{
			name: "unknown product",
			body: `{"productId": "missing", "quantity": 2}`,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("CreateWithStockDecrement", mock.Anything, mock.Anything).
					Return(domain.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Product not found",
		},
		{
			name: "insufficient stock",
			body: `{"productId": "p-1", "quantity": 1}`,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("CreateWithStockDecrement", mock.Anything, mock.Anything).
					Return(&domain.InsufficientStockError{Available: 0, Requested: 1})
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Insufficient stock. Available: 0, Requested: 1",
		},
		{
			name: "store failure",
			body: `{"productId": "p-1", "quantity": 1}`,
			setupMocks: func(repo *mocks.MockOrderRepository, pub *mocks.MockPublisher) {
				repo.On("CreateWithStockDecrement", mock.Anything, mock.Anything).
					Return(assert.AnError)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Error creating order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(mocks.MockOrderRepository)
			pub := new(mocks.MockPublisher)
			tt.setupMocks(orderRepo, pub)
			router := newTestRouter(orderRepo, new(mocks.MockProductRepository), new(mocks.MockReportRepository), pub)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedMsg, body["message"])
		})
	}
}

func TestHandler_CreateOrder_Success(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepository)
	pub := new(mocks.MockPublisher)

	orderRepo.On("CreateWithStockDecrement", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(nil).
		Run(func(args mock.Arguments) {
			order := args.Get(1).(*domain.Order)
			order.TotalPrice = 150
			order.Status = domain.StatusPending
			order.Product = &domain.Product{
				ProductID: order.ProductID,
				Name:      "Wireless Mouse",
				Price:     50,
				Category:  "Electronics",
			}
		})
	pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()

	router := newTestRouter(orderRepo, new(mocks.MockProductRepository), new(mocks.MockReportRepository), pub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"productId": "p-1", "quantity": 3}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp OrderResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, 3, resp.Quantity)
	assert.Equal(t, float64(150), resp.TotalPrice)
	assert.Equal(t, domain.StatusPending, resp.Status)
	if assert.NotNil(t, resp.Product) {
		assert.Equal(t, "Wireless Mouse", resp.Product.Name)
		assert.Equal(t, float64(50), resp.Product.Price)
		assert.Equal(t, "Electronics", resp.Product.Category)
	}

	time.Sleep(100 * time.Millisecond)
	orderRepo.AssertExpectations(t)
}

func TestHandler_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	router := newTestRouter(new(mocks.MockOrderRepository), new(mocks.MockProductRepository), new(mocks.MockReportRepository), new(mocks.MockPublisher))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/orders/some-order/status", strings.NewReader(`{"status": "returned"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid status")
}

func TestHandler_ListOrders_Pagination(t *testing.T) {
	orderRepo := new(mocks.MockOrderRepository)
	orderRepo.On("List", mock.Anything, repository.OrderFilter{
		Status: domain.StatusShipped,
		Offset: 0,
		Limit:  2,
	}).Return([]domain.Order{
		{OrderID: "o-1", ProductID: "p-1", Quantity: 1, TotalPrice: 50, Status: domain.StatusShipped},
		{OrderID: "o-2", ProductID: "p-1", Quantity: 2, TotalPrice: 100, Status: domain.StatusShipped},
	}, int64(5), nil)

	router := newTestRouter(orderRepo, new(mocks.MockProductRepository), new(mocks.MockReportRepository), new(mocks.MockPublisher))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders?status=shipped&page=1&limit=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp ListOrdersResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 2)
	assert.Equal(t, int64(5), resp.Pagination.TotalCount)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.False(t, resp.Pagination.HasPrevPage)
}

func TestHandler_LowInventory(t *testing.T) {
	reportRepo := new(mocks.MockReportRepository)
	reportRepo.On("LowStock", mock.Anything, 10).Return([]domain.Product{
		{ProductID: "p-1", Name: "Cable", StockQuantity: 0},
		{ProductID: "p-2", Name: "Charger", StockQuantity: 4},
	}, nil)

	router := newTestRouter(new(mocks.MockOrderRepository), new(mocks.MockProductRepository), reportRepo, new(mocks.MockPublisher))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard/low-inventory", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 2)
	assert.Equal(t, 0, products[0].StockQuantity)
}
