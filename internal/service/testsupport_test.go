package service

import (
	"context"
	"sync"
	"time"

	"catalog-service/internal/models"
)

// memStore is an in-memory ListingStore. Its conditional decrement
// mirrors the storage-layer semantics: check and decrement under one
// lock, flip to soldout only while the quantity is zero.
type memStore struct {
	mu       sync.Mutex
	listings map[string]map[string]*models.Listing
}

func newMemStore() *memStore {
	return &memStore{listings: make(map[string]map[string]*models.Listing)}
}

func cloneListing(l *models.Listing) *models.Listing {
	c := *l
	c.Variants = make([]models.Variant, len(l.Variants))
	copy(c.Variants, l.Variants)
	c.Attributes = make(map[string]interface{}, len(l.Attributes))
	for k, v := range l.Attributes {
		c.Attributes[k] = v
	}
	return &c
}

func (m *memStore) bucket(collection string) map[string]*models.Listing {
	if m.listings[collection] == nil {
		m.listings[collection] = make(map[string]*models.Listing)
	}
	return m.listings[collection]
}

func (m *memStore) LoadListing(_ context.Context, collection, id string) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.bucket(collection)[id]
	if !ok {
		return nil, nil
	}
	return cloneListing(l), nil
}

func (m *memStore) InsertListing(_ context.Context, collection string, listing *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucket(collection)[listing.ID] = cloneListing(listing)
	return nil
}

func (m *memStore) SaveListing(_ context.Context, collection string, listing *models.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bucket(collection)[listing.ID] = cloneListing(listing)
	return nil
}

func (m *memStore) ReplaceListing(_ context.Context, collection string, listing *models.Listing) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bucket(collection)[listing.ID]; !ok {
		return false, nil
	}
	m.bucket(collection)[listing.ID] = cloneListing(listing)
	return true, nil
}

func (m *memStore) DeleteListing(_ context.Context, collection, id string) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.bucket(collection)[id]
	if !ok {
		return nil, nil
	}
	delete(m.bucket(collection), id)
	return cloneListing(l), nil
}

func (m *memStore) ListListings(_ context.Context, collection string, filter models.ListFilter) ([]models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Listing
	for _, l := range m.bucket(collection) {
		if filter.Status != "" && l.ListingStatus != filter.Status {
			continue
		}
		out = append(out, *cloneListing(l))
	}
	return out, nil
}

func (m *memStore) CountListings(_ context.Context, collection string, filter models.ListFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, l := range m.bucket(collection) {
		if filter.Status != "" && l.ListingStatus != filter.Status {
			continue
		}
		n++
	}
	return n, nil
}

func (m *memStore) DecrementVariantStock(_ context.Context, collection, listingID, variantID string, qty int, now time.Time) (*models.Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.bucket(collection)[listingID]
	if !ok {
		return nil, models.ErrListingNotFound
	}
	v := l.FindVariant(variantID)
	if v == nil {
		return nil, models.ErrVariantNotFound
	}
	if v.Quantity < qty {
		return nil, models.ErrInsufficientStock
	}

	v.Quantity -= qty
	l.UpdatedOn = now
	if v.Quantity == 0 {
		v.Status = models.VariantStatusSoldOut
	}
	return cloneListing(l), nil
}

// recordPublisher captures published events for assertions
type recordPublisher struct {
	mu        sync.Mutex
	purchased []*models.VariantPurchasedEvent
	soldOut   []*models.VariantSoldOutEvent
	stockLow  []*models.StockLowEvent
	created   []*models.ListingCreatedEvent
	updated   []*models.ListingUpdatedEvent
	deleted   []*models.ListingDeletedEvent
	toggled   []*models.ListingStatusToggledEvent
}

func (r *recordPublisher) PublishListingCreated(_ context.Context, e *models.ListingCreatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, e)
	return nil
}

func (r *recordPublisher) PublishListingUpdated(_ context.Context, e *models.ListingUpdatedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, e)
	return nil
}

func (r *recordPublisher) PublishListingDeleted(_ context.Context, e *models.ListingDeletedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, e)
	return nil
}

func (r *recordPublisher) PublishListingStatusToggled(_ context.Context, e *models.ListingStatusToggledEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toggled = append(r.toggled, e)
	return nil
}

func (r *recordPublisher) PublishVariantPurchased(_ context.Context, e *models.VariantPurchasedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purchased = append(r.purchased, e)
	return nil
}

func (r *recordPublisher) PublishVariantSoldOut(_ context.Context, e *models.VariantSoldOutEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.soldOut = append(r.soldOut, e)
	return nil
}

func (r *recordPublisher) PublishStockLow(_ context.Context, e *models.StockLowEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stockLow = append(r.stockLow, e)
	return nil
}
