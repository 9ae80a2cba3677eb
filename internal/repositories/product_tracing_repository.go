package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("catalog/repositories")

// TracingProductRepository wraps a ProductRepository with OpenTelemetry spans.
type TracingProductRepository struct {
	next ProductRepository
}

// NewTracingProductRepository creates a repository that traces every call to next.
func NewTracingProductRepository(next ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{next: next}
}

// Create with tracing
func (r *TracingProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.category", product.ProductCategory),
			attribute.Float64("product.price", product.Price),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, product); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.String("product.id", product.ID))
	return nil
}

// GetByID with tracing
func (r *TracingProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.GetByID",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	product, err := r.next.GetByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return product, nil
}

// Delete with tracing
func (r *TracingProductRepository) Delete(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("product.id", id)),
	)
	defer span.End()

	product, err := r.next.Delete(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return product, nil
}

// recordError marks the span failed. A missing product is an expected outcome and only gets an attribute.
func recordError(span trace.Span, err error) {
	if errors.Is(err, ErrProductNotFound) {
		span.SetAttributes(attribute.Bool("product.not_found", true))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
