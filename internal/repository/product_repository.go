package repository

import (
	"context"

	"inventory-api/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
	// List filters by a case-insensitive substring over name/category plus an
	// exact category; empty arguments mean no filter.
	List(ctx context.Context, search, category string) ([]domain.Product, error)
}
