package handlers

import (
	"fmt"

	"catalog/internal/metrics"
	"catalog/internal/services"
	"catalog/pkg/logger"
	"catalog/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
)

// EventPublisher publishes product lifecycle events.
type EventPublisher interface {
	PublishProductEvent(event rabbitmq.ProductEvent) error
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	events  EventPublisher
}

// NewProductHandler creates a new ProductHandler. events may be nil, in which case no events are published.
func NewProductHandler(service *services.ProductService, events EventPublisher) *ProductHandler {
	return &ProductHandler{
		service: service,
		events:  events,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input services.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		metrics.ObserveOperation(metrics.OperationCreate, services.KindValidation.String())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(c.UserContext(), input)
	if err != nil {
		metrics.ObserveOperation(metrics.OperationCreate, services.KindOf(err).String())
		return h.respondError(c, err, "Could not create product")
	}

	metrics.ProductsCreated.Inc()
	metrics.ObserveOperation(metrics.OperationCreate, "success")
	h.publish(c, rabbitmq.NewProductCreatedEvent(product, input.ImageURL))

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	product, err := h.service.GetProduct(c.UserContext(), productID)
	if err != nil {
		metrics.ObserveOperation(metrics.OperationGet, services.KindOf(err).String())
		return h.respondError(c, err, "Could not retrieve product")
	}

	metrics.ObserveOperation(metrics.OperationGet, "success")
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and returns its prior state.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	product, err := h.service.DeleteProduct(c.UserContext(), productID)
	if err != nil {
		metrics.ObserveOperation(metrics.OperationDelete, services.KindOf(err).String())
		return h.respondError(c, err, "Could not delete product")
	}

	metrics.ProductsDeleted.Inc()
	metrics.ObserveOperation(metrics.OperationDelete, "success")
	h.publish(c, rabbitmq.NewProductDeletedEvent(product))

	return c.JSON(product)
}

// respondError maps a service error to its HTTP status.
func (h *ProductHandler) respondError(c *fiber.Ctx, err error, message string) error {
	switch services.KindOf(err) {
	case services.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  services.ValidationFields(err),
		})
	case services.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", c.Params("id")),
		})
	default: // KindPersistence, KindUnknown
		logger.Error(c.UserContext()).Err(err).Str("path", c.Path()).Msg(message)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
}

// publish sends event if a publisher is configured. Failures are logged and never fail the request.
func (h *ProductHandler) publish(c *fiber.Ctx, event rabbitmq.ProductEvent) {
	if h.events == nil {
		return
	}
	if err := h.events.PublishProductEvent(event); err != nil {
		logger.Warn(c.UserContext()).
			Err(err).
			Str("event_type", event.EventType).
			Str("product_id", event.ProductID).
			Msg("Failed to publish product event")
	}
}
