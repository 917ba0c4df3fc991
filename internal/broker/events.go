package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"catalog-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing catalog domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

func listingKey(family, listingID string) string {
	return fmt.Sprintf("listing-%s-%s", family, listingID)
}

// PublishListingCreated publishes a ListingCreated event
func (ep *EventPublisher) PublishListingCreated(ctx context.Context, event *models.ListingCreatedEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// PublishListingUpdated publishes a ListingUpdated event
func (ep *EventPublisher) PublishListingUpdated(ctx context.Context, event *models.ListingUpdatedEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// PublishListingDeleted publishes a ListingDeleted event
func (ep *EventPublisher) PublishListingDeleted(ctx context.Context, event *models.ListingDeletedEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// PublishListingStatusToggled publishes a ListingStatusToggled event
func (ep *EventPublisher) PublishListingStatusToggled(ctx context.Context, event *models.ListingStatusToggledEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// PublishVariantPurchased publishes a VariantPurchased event
func (ep *EventPublisher) PublishVariantPurchased(ctx context.Context, event *models.VariantPurchasedEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// PublishVariantSoldOut publishes a VariantSoldOut event
func (ep *EventPublisher) PublishVariantSoldOut(ctx context.Context, event *models.VariantSoldOutEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// PublishStockLow publishes a StockLow event
func (ep *EventPublisher) PublishStockLow(ctx context.Context, event *models.StockLowEvent) error {
	return ep.producer.PublishEvent(ctx, listingKey(event.Family, event.ListingID), event)
}

// EventHandler routes incoming catalog events to registered handlers
type EventHandler struct {
	onVariantSoldOut func(context.Context, *models.VariantSoldOutEvent) error
	onStockLow       func(context.Context, *models.StockLowEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnVariantSoldOut registers a handler for VariantSoldOut events
func (eh *EventHandler) OnVariantSoldOut(handler func(context.Context, *models.VariantSoldOutEvent) error) {
	eh.onVariantSoldOut = handler
}

// OnStockLow registers a handler for StockLow events
func (eh *EventHandler) OnStockLow(handler func(context.Context, *models.StockLowEvent) error) {
	eh.onStockLow = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeVariantSoldOut:
		if eh.onVariantSoldOut != nil {
			var event models.VariantSoldOutEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal VariantSoldOut event: %w", err)
			}
			return eh.onVariantSoldOut(ctx, &event)
		}

	case models.EventTypeStockLow:
		if eh.onStockLow != nil {
			var event models.StockLowEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal StockLow event: %w", err)
			}
			return eh.onStockLow(ctx, &event)
		}

	default:
		log.Printf("Ignoring event type: %s", baseEvent.EventType)
	}

	return nil
}
