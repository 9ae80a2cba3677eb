package repositories_test

import (
	"context"
	"errors"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// brokenProductRepository fails every call as an unreachable store would.
type brokenProductRepository struct{}

var errStoreDown = errors.New("store unavailable")

func (brokenProductRepository) Create(context.Context, *models.Product) error {
	return errStoreDown
}

func (brokenProductRepository) GetByID(context.Context, string) (*models.Product, error) {
	return nil, errStoreDown
}

func (brokenProductRepository) Delete(context.Context, string) (*models.Product, error) {
	return nil, errStoreDown
}

func TestTracingProductRepository(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	ctx := context.Background()

	lastSpan := func(t *testing.T) sdktrace.ReadOnlySpan {
		t.Helper()
		spans := recorder.Ended()
		require.NotEmpty(t, spans)
		return spans[len(spans)-1]
	}

	t.Run("success passes through", func(t *testing.T) {
		repo := repositories.NewTracingProductRepository(repositories.NewMockProductRepository())

		product := newProduct()
		require.NoError(t, repo.Create(ctx, product))
		span := lastSpan(t)
		assert.Equal(t, "repository.Create", span.Name())
		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.String("product.id", product.ID))

		fetched, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, fetched.ID)

		deleted, err := repo.Delete(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, product.ID, deleted.ID)
		assert.Equal(t, "repository.Delete", lastSpan(t).Name())
	})

	t.Run("not found is not a span error", func(t *testing.T) {
		repo := repositories.NewTracingProductRepository(repositories.NewMockProductRepository())

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrProductNotFound)

		span := lastSpan(t)
		assert.Equal(t, "repository.GetByID", span.Name())
		assert.Equal(t, codes.Unset, span.Status().Code)
		assert.Contains(t, span.Attributes(), attribute.Bool("product.not_found", true))
		assert.Empty(t, span.Events())
	})

	t.Run("store failure marks the span", func(t *testing.T) {
		repo := repositories.NewTracingProductRepository(brokenProductRepository{})

		_, err := repo.Delete(ctx, "any")
		assert.ErrorIs(t, err, errStoreDown)

		span := lastSpan(t)
		assert.Equal(t, "repository.Delete", span.Name())
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Equal(t, errStoreDown.Error(), span.Status().Description)
		assert.NotContains(t, span.Attributes(), attribute.Bool("product.not_found", true))
		require.Len(t, span.Events(), 1)
		assert.Equal(t, "exception", span.Events()[0].Name)
	})
}
