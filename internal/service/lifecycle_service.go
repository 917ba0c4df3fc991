package service

import (
	"context"
	"fmt"
	"time"

	"catalog-service/config"
	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService owns the create/update/toggle/delete path for
// listings across all product families.
type LifecycleService struct {
	store         ListingStore
	cache         ListingCache
	events        Publisher
	logger        *zap.Logger
	mergeOnUpdate bool
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(store ListingStore, cache ListingCache, events Publisher, cfg config.InventoryConfig) *LifecycleService {
	return &LifecycleService{
		store:         store,
		cache:         cache,
		events:        events,
		logger:        util.GetLogger(),
		mergeOnUpdate: cfg.MergeVariantsOnUpdate,
	}
}

// ListingRequest is the body of add/update listing calls
type ListingRequest struct {
	Attributes map[string]interface{} `json:"attributes"`
	Variants   []models.VariantInput  `json:"variants"`
}

// Create validates attributes and variants, computes per-variant
// discounts, assigns fresh identifiers, and persists the listing.
func (s *LifecycleService) Create(ctx context.Context, fam catalog.Family, req *ListingRequest) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Create")
	defer span.End()

	if err := fam.ValidateAttributes(req.Attributes); err != nil {
		return nil, err
	}
	variants, err := buildVariants(fam, req.Variants, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	listing := &models.Listing{
		ID:            uuid.New().String(),
		Family:        fam.Name,
		Attributes:    req.Attributes,
		Variants:      variants,
		ListingStatus: models.ListingStatusActive,
		CreatedOn:     now,
		UpdatedOn:     now,
	}

	if err := s.store.InsertListing(ctx, fam.Collection, listing); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	util.ListingsCreatedTotal.WithLabelValues(fam.Name).Inc()
	s.logger.Info("Listing created",
		zap.String("family", fam.Name),
		zap.String("listing_id", listing.ID),
		zap.Int("variants", len(listing.Variants)))

	if s.events != nil {
		event := &models.ListingCreatedEvent{
			BaseEvent: newBaseEvent(models.EventTypeListingCreated),
			Family:    fam.Name,
			ListingID: listing.ID,
			Variants:  len(listing.Variants),
		}
		if err := s.events.PublishListingCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish ListingCreated event", zap.Error(err))
		}
	}

	return listing, nil
}

// Update re-validates and replaces the variant list wholesale, exactly
// as the original edit path does: prior quantities and sold-out state
// are discarded unless the caller round-trips them. With
// INVENTORY_MERGE_VARIANTS_ON_UPDATE, variants matched by id keep their
// stored quantity and status instead.
func (s *LifecycleService) Update(ctx context.Context, fam catalog.Family, listingID string, req *ListingRequest) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Update")
	defer span.End()

	if err := fam.ValidateAttributes(req.Attributes); err != nil {
		return nil, err
	}
	variants, err := buildVariants(fam, req.Variants, true)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.LoadListing(ctx, fam.Collection, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if existing == nil {
		return nil, models.ErrListingNotFound
	}

	if s.mergeOnUpdate {
		variants = mergeVariants(existing.Variants, variants)
	}

	listing := &models.Listing{
		ID:            listingID,
		Family:        fam.Name,
		Attributes:    req.Attributes,
		Variants:      variants,
		ListingStatus: existing.ListingStatus,
		CreatedOn:     existing.CreatedOn,
		UpdatedOn:     time.Now(),
	}

	found, err := s.store.ReplaceListing(ctx, fam.Collection, listing)
	if err != nil {
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}
	if !found {
		return nil, models.ErrListingNotFound
	}

	s.invalidate(ctx, fam, listingID)
	util.ListingsUpdatedTotal.WithLabelValues(fam.Name).Inc()
	s.logger.Info("Listing updated",
		zap.String("family", fam.Name),
		zap.String("listing_id", listingID))

	if s.events != nil {
		event := &models.ListingUpdatedEvent{
			BaseEvent: newBaseEvent(models.EventTypeListingUpdated),
			Family:    fam.Name,
			ListingID: listingID,
			Variants:  len(listing.Variants),
		}
		if err := s.events.PublishListingUpdated(ctx, event); err != nil {
			s.logger.Error("Failed to publish ListingUpdated event", zap.Error(err))
		}
	}

	return listing, nil
}

// ToggleStatus flips the whole-listing Active/Inactive switch. It is
// independent of per-variant sold-out state; two calls in sequence
// restore the original status.
func (s *LifecycleService) ToggleStatus(ctx context.Context, fam catalog.Family, listingID string) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "LifecycleService.ToggleStatus")
	defer span.End()

	listing, err := s.store.LoadListing(ctx, fam.Collection, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing == nil {
		return nil, models.ErrListingNotFound
	}

	if listing.ListingStatus == models.ListingStatusActive {
		listing.ListingStatus = models.ListingStatusInactive
	} else {
		listing.ListingStatus = models.ListingStatusActive
	}
	listing.UpdatedOn = time.Now()

	if _, err := s.store.ReplaceListing(ctx, fam.Collection, listing); err != nil {
		return nil, fmt.Errorf("failed to toggle listing status: %w", err)
	}

	s.invalidate(ctx, fam, listingID)
	s.logger.Info("Listing status toggled",
		zap.String("family", fam.Name),
		zap.String("listing_id", listingID),
		zap.String("status", listing.ListingStatus))

	if s.events != nil {
		event := &models.ListingStatusToggledEvent{
			BaseEvent: newBaseEvent(models.EventTypeListingStatusToggled),
			Family:    fam.Name,
			ListingID: listingID,
			NewStatus: listing.ListingStatus,
		}
		if err := s.events.PublishListingStatusToggled(ctx, event); err != nil {
			s.logger.Error("Failed to publish ListingStatusToggled event", zap.Error(err))
		}
	}

	return listing, nil
}

// Get retrieves a listing, consulting the cache first
func (s *LifecycleService) Get(ctx context.Context, fam catalog.Family, listingID string) (*models.Listing, error) {
	if s.cache != nil {
		if listing, ok := s.cache.GetListing(ctx, fam.Name, listingID); ok {
			return listing, nil
		}
	}

	listing, err := s.store.LoadListing(ctx, fam.Collection, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing == nil {
		return nil, models.ErrListingNotFound
	}

	if s.cache != nil {
		if err := s.cache.SetListing(ctx, fam.Name, listing); err != nil {
			s.logger.Warn("Failed to cache listing", zap.Error(err))
		}
	}
	return listing, nil
}

// List pages through a family's listings and returns the total count
// under the same filter.
func (s *LifecycleService) List(ctx context.Context, fam catalog.Family, filter models.ListFilter) ([]models.Listing, int64, error) {
	listings, err := s.store.ListListings(ctx, fam.Collection, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	total, err := s.store.CountListings(ctx, fam.Collection, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return listings, total, nil
}

// Delete removes a listing and all its variants with it
func (s *LifecycleService) Delete(ctx context.Context, fam catalog.Family, listingID string) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Delete")
	defer span.End()

	listing, err := s.store.DeleteListing(ctx, fam.Collection, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete listing: %w", err)
	}
	if listing == nil {
		return nil, models.ErrListingNotFound
	}

	s.invalidate(ctx, fam, listingID)
	util.ListingsDeletedTotal.WithLabelValues(fam.Name).Inc()
	s.logger.Info("Listing deleted",
		zap.String("family", fam.Name),
		zap.String("listing_id", listingID))

	if s.events != nil {
		event := &models.ListingDeletedEvent{
			BaseEvent: newBaseEvent(models.EventTypeListingDeleted),
			Family:    fam.Name,
			ListingID: listingID,
		}
		if err := s.events.PublishListingDeleted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ListingDeleted event", zap.Error(err))
		}
	}

	return listing, nil
}

func (s *LifecycleService) invalidate(ctx context.Context, fam catalog.Family, listingID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx, fam.Name, listingID); err != nil {
		s.logger.Warn("Failed to invalidate listing cache",
			zap.String("listing_id", listingID),
			zap.Error(err))
	}
}
