package service

import (
	"context"
	"testing"

	"catalog-service/config"
	"catalog-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func newTestLifecycle(store *memStore, events Publisher, merge bool) *LifecycleService {
	return NewLifecycleService(store, nil, events, config.InventoryConfig{
		MergeVariantsOnUpdate: merge,
	})
}

func productRequest() *ListingRequest {
	return &ListingRequest{
		Attributes: map[string]interface{}{
			"model":       "Widget",
			"type":        "gadget",
			"releaseYear": "2023",
		},
		Variants: []models.VariantInput{
			{
				Color:         "Red",
				Price:         "80",
				OriginalPrice: "100",
				Quantity:      intPtr(10),
			},
		},
	}
}

func TestCreateAssignsIDsAndComputesDiscount(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	events := &recordPublisher{}
	svc := newTestLifecycle(store, events, false)

	listing, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, "product", listing.Family)
	assert.Equal(t, models.ListingStatusActive, listing.ListingStatus)
	assert.Equal(t, listing.CreatedOn, listing.UpdatedOn)

	require.Len(t, listing.Variants, 1)
	v := listing.Variants[0]
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "20%", v.PriceOff)
	assert.Equal(t, 10, v.Quantity)
	assert.Equal(t, models.VariantStatusAvailable, v.Status)

	stored, err := store.LoadListing(context.Background(), fam.Collection, listing.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	require.Len(t, events.created, 1)
	assert.Equal(t, listing.ID, events.created[0].ListingID)
}

func TestCreateRequiresAtLeastOneVariant(t *testing.T) {
	fam := mustFamily(t, "product")
	svc := newTestLifecycle(newMemStore(), &recordPublisher{}, false)

	req := productRequest()
	req.Variants = nil

	_, err := svc.Create(context.Background(), fam, req)
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Contains(t, err.Error(), "At least one variant is required")
}

func TestCreateReportsFirstMissingVariantField(t *testing.T) {
	fam := mustFamily(t, "iphone")
	svc := newTestLifecycle(newMemStore(), &recordPublisher{}, false)

	req := &ListingRequest{
		Attributes: map[string]interface{}{
			"model":        "iPhone 13",
			"releaseYear":  "2021",
			"features":     "5G",
			"condition":    "used",
			"age":          "2 years",
			"categoryName": "smartphones",
		},
		// storage and batteryHealth both missing; the check order puts
		// storage first
		Variants: []models.VariantInput{
			{
				Color:         "Black",
				Price:         "800",
				OriginalPrice: "1000",
				Quantity:      intPtr(5),
			},
		},
	}

	_, err := svc.Create(context.Background(), fam, req)
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))
	assert.Contains(t, err.Error(), "storage is required")
}

func TestCreateRequiresFamilyAttributes(t *testing.T) {
	fam := mustFamily(t, "product")
	svc := newTestLifecycle(newMemStore(), &recordPublisher{}, false)

	req := productRequest()
	delete(req.Attributes, "model")

	_, err := svc.Create(context.Background(), fam, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	fam := mustFamily(t, "product")
	svc := newTestLifecycle(newMemStore(), &recordPublisher{}, false)

	req := productRequest()
	req.Variants[0].Quantity = intPtr(-1)

	_, err := svc.Create(context.Background(), fam, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantity cannot be negative")
}

func TestUpdateReplacesVariantsWholesale(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	svc := newTestLifecycle(store, &recordPublisher{}, false)

	created, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)

	// Sell the variant out, then edit the listing without round-tripping
	// the variant id. The replace path restocks it with whatever the
	// caller sent.
	stored, err := store.LoadListing(context.Background(), fam.Collection, created.ID)
	require.NoError(t, err)
	stored.Variants[0].Quantity = 0
	stored.Variants[0].Status = models.VariantStatusSoldOut
	require.NoError(t, store.SaveListing(context.Background(), fam.Collection, stored))

	req := productRequest()
	req.Variants[0].Quantity = intPtr(7)
	updated, err := svc.Update(context.Background(), fam, created.ID, req)
	require.NoError(t, err)

	require.Len(t, updated.Variants, 1)
	assert.NotEqual(t, created.Variants[0].ID, updated.Variants[0].ID)
	assert.Equal(t, 7, updated.Variants[0].Quantity)
	assert.Equal(t, models.VariantStatusAvailable, updated.Variants[0].Status)
	assert.Equal(t, created.CreatedOn, updated.CreatedOn)
}

func TestUpdateMergePreservesStockByID(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	svc := newTestLifecycle(store, &recordPublisher{}, true)

	created, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)
	variantID := created.Variants[0].ID

	stored, err := store.LoadListing(context.Background(), fam.Collection, created.ID)
	require.NoError(t, err)
	stored.Variants[0].Quantity = 0
	stored.Variants[0].Status = models.VariantStatusSoldOut
	require.NoError(t, store.SaveListing(context.Background(), fam.Collection, stored))

	req := productRequest()
	req.Variants[0].ID = variantID
	req.Variants[0].Price = "60"
	req.Variants[0].Quantity = intPtr(99)
	updated, err := svc.Update(context.Background(), fam, created.ID, req)
	require.NoError(t, err)

	require.Len(t, updated.Variants, 1)
	v := updated.Variants[0]
	assert.Equal(t, variantID, v.ID)
	assert.Equal(t, "60", v.Price)
	assert.Equal(t, "40%", v.PriceOff)
	assert.Equal(t, 0, v.Quantity, "merge keeps the stored quantity")
	assert.Equal(t, models.VariantStatusSoldOut, v.Status)
}

func TestUpdateListingNotFound(t *testing.T) {
	fam := mustFamily(t, "product")
	svc := newTestLifecycle(newMemStore(), &recordPublisher{}, false)

	_, err := svc.Update(context.Background(), fam, "missing", productRequest())
	assert.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestToggleStatusFlipsAndRestores(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	events := &recordPublisher{}
	svc := newTestLifecycle(store, events, false)

	created, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(context.Background(), fam, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusInactive, toggled.ListingStatus)

	restored, err := svc.ToggleStatus(context.Background(), fam, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ListingStatusActive, restored.ListingStatus)

	require.Len(t, events.toggled, 2)
	assert.Equal(t, models.ListingStatusInactive, events.toggled[0].NewStatus)
	assert.Equal(t, models.ListingStatusActive, events.toggled[1].NewStatus)
}

func TestToggleDoesNotTouchVariantStatus(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	svc := newTestLifecycle(store, &recordPublisher{}, false)

	created, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(context.Background(), fam, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VariantStatusAvailable, toggled.Variants[0].Status)
}

func TestDeleteReturnsRemovedListing(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	events := &recordPublisher{}
	svc := newTestLifecycle(store, events, false)

	created, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), fam, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	stored, err := store.LoadListing(context.Background(), fam.Collection, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.Len(t, events.deleted, 1)

	_, err = svc.Delete(context.Background(), fam, created.ID)
	assert.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestGetListingNotFound(t *testing.T) {
	fam := mustFamily(t, "product")
	svc := newTestLifecycle(newMemStore(), &recordPublisher{}, false)

	_, err := svc.Get(context.Background(), fam, "missing")
	assert.ErrorIs(t, err, models.ErrListingNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	fam := mustFamily(t, "product")
	store := newMemStore()
	svc := newTestLifecycle(store, &recordPublisher{}, false)

	first, err := svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), fam, productRequest())
	require.NoError(t, err)
	_, err = svc.ToggleStatus(context.Background(), fam, first.ID)
	require.NoError(t, err)

	active, total, err := svc.List(context.Background(), fam, models.ListFilter{Status: models.ListingStatusActive})
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, int64(1), total)

	all, total, err := svc.List(context.Background(), fam, models.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(2), total)
}
