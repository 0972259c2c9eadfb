package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-api/internal/domain"
	"inventory-api/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_CreateProduct(t *testing.T) {
	tests := []struct {
		name          string
		input         ProductInput
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockPublisher)
		expectedError string
	}{
		{
			name: "successful creation assigns an id",
			input: ProductInput{
				Name:          TestProductName,
				Price:         TestProductPrice,
				StockQuantity: TestProductStock,
				Category:      TestProductCategory,
			},
			setupMocks: func(mockRepo *mocks.MockProductRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)
				mockPub.On("Publish", mock.Anything, "product.created", mock.Anything).Return(nil).Maybe()
			},
		},
		{
			name: "client-supplied id is kept",
			input: ProductInput{
				ProductID:     TestProductID,
				Name:          TestProductName,
				Price:         TestProductPrice,
				StockQuantity: TestProductStock,
				Category:      TestProductCategory,
			},
			setupMocks: func(mockRepo *mocks.MockProductRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
					return p.ProductID == TestProductID
				})).Return(nil)
				mockPub.On("Publish", mock.Anything, "product.created", mock.Anything).Return(nil).Maybe()
			},
		},
		{
			name:          "missing name",
			input:         ProductInput{Category: TestProductCategory, Price: 10},
			setupMocks:    func(*mocks.MockProductRepository, *mocks.MockPublisher) {},
			expectedError: "Product name and category are required.",
		},
		{
			name: "negative price",
			input: ProductInput{
				Name:     TestProductName,
				Category: TestProductCategory,
				Price:    -1,
			},
			setupMocks:    func(*mocks.MockProductRepository, *mocks.MockPublisher) {},
			expectedError: "Price and stock quantity must be non-negative.",
		},
		{
			name: "negative stock",
			input: ProductInput{
				Name:          TestProductName,
				Category:      TestProductCategory,
				Price:         10,
				StockQuantity: -5,
			},
			setupMocks:    func(*mocks.MockProductRepository, *mocks.MockPublisher) {},
			expectedError: "Price and stock quantity must be non-negative.",
		},
		{
			name: "repository error",
			input: ProductInput{
				Name:          TestProductName,
				Price:         TestProductPrice,
				StockQuantity: TestProductStock,
				Category:      TestProductCategory,
			},
			setupMocks: func(mockRepo *mocks.MockProductRepository, mockPub *mocks.MockPublisher) {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).
					Return(errors.New("database error"))
			},
			expectedError: "database error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProductRepository)
			mockPub := new(mocks.MockPublisher)
			tt.setupMocks(mockRepo, mockPub)

			service := newTestProductService(mockRepo, mockPub)
			result, err := service.CreateProduct(context.Background(), tt.input)

			if tt.expectedError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotEmpty(t, result.ProductID)
				assert.Equal(t, tt.input.Name, result.Name)
				assert.Equal(t, tt.input.Price, result.Price)
				assert.Equal(t, tt.input.StockQuantity, result.StockQuantity)
			}

			time.Sleep(100 * time.Millisecond)

			mockRepo.AssertExpectations(t)
			mockPub.AssertExpectations(t)
		})
	}
}

func TestProductService_ListProducts(t *testing.T) {
	products := []domain.Product{
		*CreateMockProduct(TestProductID, TestProductName, TestProductPrice, TestProductStock, TestProductCategory),
		*CreateMockProduct("another-id", "Keyboard", 80, 12, TestProductCategory),
	}

	tests := []struct {
		name     string
		search   string
		category string
	}{
		{name: "unfiltered"},
		{name: "search filter", search: "mouse"},
		{name: "category filter", category: TestProductCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProductRepository)
			mockPub := new(mocks.MockPublisher)
			mockRepo.On("List", mock.Anything, tt.search, tt.category).Return(products, nil)

			service := newTestProductService(mockRepo, mockPub)
			result, err := service.ListProducts(context.Background(), tt.search, tt.category)

			assert.NoError(t, err)
			assert.Len(t, result, len(products))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_ListProducts_RepositoryError(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	mockPub := new(mocks.MockPublisher)
	mockRepo.On("List", mock.Anything, "", "").Return(nil, errors.New("database error"))

	service := newTestProductService(mockRepo, mockPub)
	result, err := service.ListProducts(context.Background(), "", "")

	assert.Error(t, err)
	assert.Nil(t, result)
}
