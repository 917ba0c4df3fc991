package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog-service/config"
	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService runs the purchase flow for every product family. The
// per-family duplication of the original system collapses into one
// service parameterized by a catalog.Family descriptor.
type InventoryService struct {
	store             ListingStore
	cache             ListingCache
	events            Publisher
	logger            *zap.Logger
	atomicStock       bool
	lowStockThreshold int
}

// NewInventoryService creates a new inventory service
func NewInventoryService(store ListingStore, cache ListingCache, events Publisher, cfg config.InventoryConfig) *InventoryService {
	return &InventoryService{
		store:             store,
		cache:             cache,
		events:            events,
		logger:            util.GetLogger(),
		atomicStock:       cfg.AtomicStock,
		lowStockThreshold: cfg.LowStockThreshold,
	}
}

// PurchaseRequest is the body of PUT /purchase<Family>/:id
type PurchaseRequest struct {
	VariantID          string `json:"variantId" binding:"required"`
	QuantityToPurchase int    `json:"quantityToPurchase"`
}

// Purchase decrements a variant's stock and re-saves the listing.
//
// The default strategy reproduces the original read-modify-write save,
// including its lost-update race under concurrent purchases. With
// INVENTORY_ATOMIC_STOCK the decrement becomes a conditional update at
// the storage layer and two concurrent purchases of the last unit
// resolve to exactly one success.
func (s *InventoryService) Purchase(ctx context.Context, fam catalog.Family, listingID string, req *PurchaseRequest) (*models.Listing, error) {
	ctx, span := util.StartSpan(ctx, "InventoryService.Purchase")
	defer span.End()

	start := time.Now()
	defer func() {
		util.PurchaseLatency.Observe(time.Since(start).Seconds())
	}()

	if req.QuantityToPurchase <= 0 {
		util.PurchasesFailedTotal.WithLabelValues(fam.Name, "invalid_quantity").Inc()
		return nil, models.ErrInvalidQuantity
	}

	var listing *models.Listing
	var err error
	if s.atomicStock {
		listing, err = s.store.DecrementVariantStock(ctx, fam.Collection, listingID, req.VariantID, req.QuantityToPurchase, time.Now())
	} else {
		listing, err = s.purchaseReadModifyWrite(ctx, fam, listingID, req)
	}
	if err != nil {
		util.PurchasesFailedTotal.WithLabelValues(fam.Name, failureReason(err)).Inc()
		return nil, err
	}

	s.invalidate(ctx, fam, listingID)
	util.PurchasesTotal.WithLabelValues(fam.Name).Inc()

	variant := listing.FindVariant(req.VariantID)
	if variant != nil {
		s.logger.Info("Variant purchased",
			zap.String("family", fam.Name),
			zap.String("listing_id", listingID),
			zap.String("variant_id", variant.ID),
			zap.Int("quantity", req.QuantityToPurchase),
			zap.Int("remaining", variant.Quantity))
		s.publishPurchaseEvents(ctx, fam, listing, variant, req.QuantityToPurchase)
	}

	return listing, nil
}

// purchaseReadModifyWrite is the source-compatible strategy: load the
// whole listing, mutate the variant in memory, save the whole listing
// back. Steps are not atomic across the round-trip.
func (s *InventoryService) purchaseReadModifyWrite(ctx context.Context, fam catalog.Family, listingID string, req *PurchaseRequest) (*models.Listing, error) {
	listing, err := s.store.LoadListing(ctx, fam.Collection, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing == nil {
		return nil, models.ErrListingNotFound
	}

	variant := listing.FindVariant(req.VariantID)
	if variant == nil {
		return nil, models.ErrVariantNotFound
	}

	if err := decrementVariant(variant, req.QuantityToPurchase); err != nil {
		return nil, err
	}

	listing.UpdatedOn = time.Now()
	if err := s.store.SaveListing(ctx, fam.Collection, listing); err != nil {
		return nil, fmt.Errorf("failed to save listing: %w", err)
	}
	return listing, nil
}

func (s *InventoryService) publishPurchaseEvents(ctx context.Context, fam catalog.Family, listing *models.Listing, variant *models.Variant, qty int) {
	if s.events == nil {
		return
	}

	purchased := &models.VariantPurchasedEvent{
		BaseEvent: newBaseEvent(models.EventTypeVariantPurchased),
		Family:    fam.Name,
		ListingID: listing.ID,
		VariantID: variant.ID,
		Quantity:  qty,
		Remaining: variant.Quantity,
	}
	if err := s.events.PublishVariantPurchased(ctx, purchased); err != nil {
		s.logger.Error("Failed to publish VariantPurchased event", zap.Error(err))
	}

	if variant.Quantity == 0 {
		util.VariantsSoldOutTotal.WithLabelValues(fam.Name).Inc()
		soldOut := &models.VariantSoldOutEvent{
			BaseEvent: newBaseEvent(models.EventTypeVariantSoldOut),
			Family:    fam.Name,
			ListingID: listing.ID,
			VariantID: variant.ID,
		}
		if err := s.events.PublishVariantSoldOut(ctx, soldOut); err != nil {
			s.logger.Error("Failed to publish VariantSoldOut event", zap.Error(err))
		}
		return
	}

	if variant.Quantity <= s.lowStockThreshold {
		low := &models.StockLowEvent{
			BaseEvent: newBaseEvent(models.EventTypeStockLow),
			Family:    fam.Name,
			ListingID: listing.ID,
			VariantID: variant.ID,
			Remaining: variant.Quantity,
			Threshold: s.lowStockThreshold,
		}
		if err := s.events.PublishStockLow(ctx, low); err != nil {
			s.logger.Error("Failed to publish StockLow event", zap.Error(err))
		}
	}
}

func (s *InventoryService) invalidate(ctx context.Context, fam catalog.Family, listingID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListing(ctx, fam.Name, listingID); err != nil {
		s.logger.Warn("Failed to invalidate listing cache",
			zap.String("listing_id", listingID),
			zap.Error(err))
	}
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, models.ErrListingNotFound):
		return "listing_not_found"
	case errors.Is(err, models.ErrVariantNotFound):
		return "variant_not_found"
	case errors.Is(err, models.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, models.ErrInvalidQuantity):
		return "invalid_quantity"
	default:
		return "internal_error"
	}
}
