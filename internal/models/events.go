package models

import "time"

// Event types
const (
	EventTypeListingCreated       = "LISTING_CREATED"
	EventTypeListingUpdated       = "LISTING_UPDATED"
	EventTypeListingDeleted       = "LISTING_DELETED"
	EventTypeListingStatusToggled = "LISTING_STATUS_TOGGLED"
	EventTypeVariantPurchased     = "VARIANT_PURCHASED"
	EventTypeVariantSoldOut       = "VARIANT_SOLD_OUT"
	EventTypeStockLow             = "STOCK_LOW"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ListingCreatedEvent published when a listing is created
type ListingCreatedEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
	Variants  int    `json:"variants"`
}

// ListingUpdatedEvent published when a listing is edited
type ListingUpdatedEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
	Variants  int    `json:"variants"`
}

// ListingDeletedEvent published when a listing is removed
type ListingDeletedEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
}

// ListingStatusToggledEvent published when the Active/Inactive toggle flips
type ListingStatusToggledEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
	NewStatus string `json:"new_status"`
}

// VariantPurchasedEvent published after a successful stock decrement
type VariantPurchasedEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

// VariantSoldOutEvent published when a purchase drives quantity to zero
type VariantSoldOutEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
	VariantID string `json:"variant_id"`
}

// StockLowEvent published when remaining quantity falls to or below the
// configured threshold
type StockLowEvent struct {
	BaseEvent
	Family    string `json:"family"`
	ListingID string `json:"listing_id"`
	VariantID string `json:"variant_id"`
	Remaining int    `json:"remaining"`
	Threshold int    `json:"threshold"`
}
