package service

import (
	"context"
	"time"

	"catalog-service/internal/models"
)

// ListingStore is the persistence collaborator. *store.Store implements
// it against mongo; tests substitute an in-memory fake.
type ListingStore interface {
	LoadListing(ctx context.Context, collection, id string) (*models.Listing, error)
	InsertListing(ctx context.Context, collection string, listing *models.Listing) error
	SaveListing(ctx context.Context, collection string, listing *models.Listing) error
	ReplaceListing(ctx context.Context, collection string, listing *models.Listing) (bool, error)
	DeleteListing(ctx context.Context, collection, id string) (*models.Listing, error)
	ListListings(ctx context.Context, collection string, filter models.ListFilter) ([]models.Listing, error)
	CountListings(ctx context.Context, collection string, filter models.ListFilter) (int64, error)
	DecrementVariantStock(ctx context.Context, collection, listingID, variantID string, qty int, now time.Time) (*models.Listing, error)
}

// ListingCache fronts listing reads. May be nil when caching is
// disabled.
type ListingCache interface {
	GetListing(ctx context.Context, family, id string) (*models.Listing, bool)
	SetListing(ctx context.Context, family string, listing *models.Listing) error
	InvalidateListing(ctx context.Context, family, id string) error
}

// Publisher emits catalog domain events. broker.EventPublisher
// implements it; publish failures are logged, never fail the operation.
type Publisher interface {
	PublishListingCreated(ctx context.Context, event *models.ListingCreatedEvent) error
	PublishListingUpdated(ctx context.Context, event *models.ListingUpdatedEvent) error
	PublishListingDeleted(ctx context.Context, event *models.ListingDeletedEvent) error
	PublishListingStatusToggled(ctx context.Context, event *models.ListingStatusToggledEvent) error
	PublishVariantPurchased(ctx context.Context, event *models.VariantPurchasedEvent) error
	PublishVariantSoldOut(ctx context.Context, event *models.VariantSoldOutEvent) error
	PublishStockLow(ctx context.Context, event *models.StockLowEvent) error
}
