package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned when no product exists for the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// Create assigns the ID and timestamps and stores the product.
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Delete removes the product and returns its state prior to deletion.
	Delete(ctx context.Context, id string) (*models.Product, error)
}
