package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"catalog/internal/models"

	"github.com/google/uuid"
)

// Event types
const (
	EventTypeProductCreated = "product.created"
	EventTypeProductDeleted = "product.deleted"
)

// ProductEvent is the message published after a product is created or deleted.
type ProductEvent struct {
	EventID         string    `json:"eventId"`
	EventType       string    `json:"eventType"`
	ProductID       string    `json:"productId"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	ProductCategory string    `json:"productCategory"`
	ProductType     string    `json:"productType"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewProductCreatedEvent builds the event for a newly created product.
// imageURL is only carried here; the catalog itself does not store it.
func NewProductCreatedEvent(product *models.Product, imageURL string) ProductEvent {
	event := newProductEvent(EventTypeProductCreated, product)
	event.ImageURL = imageURL
	return event
}

// NewProductDeletedEvent builds the event for a deleted product.
func NewProductDeletedEvent(product *models.Product) ProductEvent {
	return newProductEvent(EventTypeProductDeleted, product)
}

func newProductEvent(eventType string, product *models.Product) ProductEvent {
	return ProductEvent{
		EventID:         uuid.New().String(),
		EventType:       eventType,
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
		ProductCategory: product.ProductCategory,
		ProductType:     product.ProductType,
		Timestamp:       time.Now().UTC(),
	}
}

// DecodeProductEvent parses a message body into a ProductEvent.
func DecodeProductEvent(body []byte) (ProductEvent, error) {
	var event ProductEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return ProductEvent{}, fmt.Errorf("failed to decode product event: %w", err)
	}
	switch event.EventType {
	case EventTypeProductCreated, EventTypeProductDeleted:
	default:
		return ProductEvent{}, fmt.Errorf("unknown product event type %q", event.EventType)
	}
	return event, nil
}
