package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names used as the "operation" label.
const (
	OperationCreate = "create"
	OperationGet    = "get"
	OperationDelete = "delete"
)

var (
	// ProductsCreated counts successfully created products.
	ProductsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_created_total",
		Help: "The total number of products created",
	})

	// ProductsDeleted counts successfully deleted products.
	ProductsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_products_deleted_total",
		Help: "The total number of products deleted",
	})

	// ProductOperations counts product operations by outcome.
	ProductOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_product_operations_total",
		Help: "Total number of product operations by result",
	}, []string{"operation", "result"})
)

// ObserveOperation records the outcome of one product operation.
func ObserveOperation(operation, result string) {
	ProductOperations.WithLabelValues(operation, result).Inc()
}
