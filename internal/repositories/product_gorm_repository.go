package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Create inserts a new product, assigning its ID and timestamps.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	product.ID = uuid.New().String()
	// Postgres keeps microseconds; truncating here makes the returned value match a later read.
	now := time.Now().UTC().Truncate(time.Microsecond)
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := findProduct(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product by its ID and returns the removed row.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	var deleted *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := findProduct(tx, id)
		if err != nil {
			return err
		}

		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost a race with a concurrent delete.
			return fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		deleted = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func findProduct(db *gorm.DB, id string) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}
