package http

import (
	"errors"
	"net/http"
	"strconv"

	"inventory-api/internal/domain"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	orders    *services.OrderService
	products  *services.ProductService
	dashboard *services.DashboardService
	log       *zap.SugaredLogger
}

func NewHandler(orders *services.OrderService, products *services.ProductService, dashboard *services.DashboardService, log *zap.SugaredLogger) *Handler {
	return &Handler{
		orders:    orders,
		products:  products,
		dashboard: dashboard,
		log:       log,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/orders", h.ListOrders)
	r.POST("/orders", h.CreateOrder)
	r.PUT("/orders/:orderId/status", h.UpdateOrderStatus)

	r.GET("/products", h.ListProducts)
	r.POST("/products", h.CreateProduct)

	r.GET("/dashboard", h.DashboardMetrics)
	r.GET("/dashboard/sales-report", h.SalesReport)
	r.GET("/dashboard/low-inventory", h.LowInventory)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err, "Error creating order")
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	order, err := h.orders.UpdateOrderStatus(c.Request.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err, "Error updating order status")
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.orders.ListOrders(c.Request.Context(), services.ListOrdersParams{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.respondError(c, err, "Error retrieving orders")
		return
	}

	c.JSON(http.StatusOK, ListOrdersResponse{
		Orders:     toOrderResponses(result.Orders),
		Pagination: result.Pagination,
	})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), services.ProductInput{
		ProductID:     req.ProductID,
		Name:          req.Name,
		Price:         req.Price,
		Rating:        req.Rating,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
	})
	if err != nil {
		h.respondError(c, err, "Error creating product")
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		h.respondError(c, err, "Error retrieving products")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) DashboardMetrics(c *gin.Context) {
	m, err := h.dashboard.Metrics(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error retrieving dashboard metrics")
		return
	}

	c.JSON(http.StatusOK, m)
}

func (h *Handler) SalesReport(c *gin.Context) {
	report, err := h.dashboard.SalesReport(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error retrieving sales report")
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *Handler) LowInventory(c *gin.Context) {
	products, err := h.dashboard.LowInventory(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error retrieving low inventory report")
		return
	}

	c.JSON(http.StatusOK, products)
}

// respondError maps the error taxonomy onto HTTP statuses. Everything not
// recognized is a 500 with the endpoint's generic message.
func (h *Handler) respondError(c *gin.Context, err error, fallback string) {
	var (
		validationErr *domain.ValidationError
		stockErr      *domain.InsufficientStockError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	default:
		h.log.Errorw(fallback, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
