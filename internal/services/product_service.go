package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// CreateProductInput is the command accepted by CreateProduct.
type CreateProductInput struct {
	Name            string  `json:"name" validate:"required"`
	Description     *string `json:"description" validate:"required"`
	Price           float64 `json:"price" validate:"gt=0"`
	ImageURL        string  `json:"imageUrl"`
	ProductCategory string  `json:"productCategory" validate:"required"`
	ProductType     string  `json:"productType" validate:"required"`
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	validate := validator.New()
	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ProductService{
		repo:     repo,
		validate: validate,
	}
}

// CreateProduct validates the input, derives the short description and stores a new product.
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	const op = "create product"

	if err := s.validate.Struct(input); err != nil {
		return nil, validationError(op, err)
	}

	product := &models.Product{
		Name:             input.Name,
		DescriptionLong:  *input.Description,
		DescriptionShort: ShortenDescription(*input.Description),
		Price:            input.Price,
		ProductCategory:  input.ProductCategory,
		ProductType:      input.ProductType,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, storeError(op, err)
	}
	return product, nil
}

// GetProduct retrieves a single product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get product", err)
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns the deleted product.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError("delete product", err)
	}
	return product, nil
}

func validationError(op string, err error) *Error {
	fields := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return &Error{Kind: KindValidation, Op: op, Fields: fields, Err: err}
}

func storeError(op string, err error) *Error {
	if errors.Is(err, repositories.ErrProductNotFound) {
		return &Error{Kind: KindNotFound, Op: op, Err: err}
	}
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}
