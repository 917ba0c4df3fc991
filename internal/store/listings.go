package store

import (
	"context"
	"fmt"
	"time"

	"catalog-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LoadListing retrieves a listing by id. A missing document is a normal
// outcome and returns (nil, nil).
func (s *Store) LoadListing(ctx context.Context, collection, id string) (*models.Listing, error) {
	var listing models.Listing
	err := s.collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load listing %s: %w", id, err)
	}
	return &listing, nil
}

// InsertListing stores a freshly created listing
func (s *Store) InsertListing(ctx context.Context, collection string, listing *models.Listing) error {
	if _, err := s.collection(collection).InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}
	return nil
}

// SaveListing performs an idempotent full-document upsert. This is the
// write half of the compatible read-modify-write purchase path.
func (s *Store) SaveListing(ctx context.Context, collection string, listing *models.Listing) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection(collection).ReplaceOne(ctx, bson.M{"_id": listing.ID}, listing, opts); err != nil {
		return fmt.Errorf("failed to save listing %s: %w", listing.ID, err)
	}
	return nil
}

// ReplaceListing overwrites an existing listing and reports whether it
// was found.
func (s *Store) ReplaceListing(ctx context.Context, collection string, listing *models.Listing) (bool, error) {
	res, err := s.collection(collection).ReplaceOne(ctx, bson.M{"_id": listing.ID}, listing)
	if err != nil {
		return false, fmt.Errorf("failed to replace listing %s: %w", listing.ID, err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteListing removes a listing and returns the removed document, or
// (nil, nil) when absent.
func (s *Store) DeleteListing(ctx context.Context, collection, id string) (*models.Listing, error) {
	var listing models.Listing
	err := s.collection(collection).FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete listing %s: %w", id, err)
	}
	return &listing, nil
}

// ListListings pages through a family's listings
func (s *Store) ListListings(ctx context.Context, collection string, filter models.ListFilter) ([]models.Listing, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["listing_status"] = filter.Status
	}

	opts := options.Find().SetSkip(filter.Skip).SetSort(bson.D{{Key: "created_on", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := s.collection(collection).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}

	var listings []models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode listings: %w", err)
	}
	return listings, nil
}

// CountListings counts a family's listings under the same filter as
// ListListings.
func (s *Store) CountListings(ctx context.Context, collection string, filter models.ListFilter) (int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["listing_status"] = filter.Status
	}
	return s.collection(collection).CountDocuments(ctx, query)
}

// DecrementVariantStock performs the atomic purchase decrement: the
// embedded variant's quantity is decremented only when it still holds
// at least qty units, so two concurrent purchases of the last unit
// resolve to exactly one success. Returns the post-decrement listing.
func (s *Store) DecrementVariantStock(ctx context.Context, collection, listingID, variantID string, qty int, now time.Time) (*models.Listing, error) {
	coll := s.collection(collection)

	filter := bson.M{
		"_id": listingID,
		"variants": bson.M{"$elemMatch": bson.M{
			"id":       variantID,
			"quantity": bson.M{"$gte": qty},
		}},
	}
	update := bson.M{
		"$inc": bson.M{"variants.$[v].quantity": -qty},
		"$set": bson.M{"updated_on": now},
	}
	opts := options.FindOneAndUpdate().
		SetArrayFilters(options.ArrayFilters{Filters: []interface{}{bson.M{"v.id": variantID}}}).
		SetReturnDocument(options.After)

	var listing models.Listing
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, s.explainDecrementMiss(ctx, collection, listingID, variantID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	variant := listing.FindVariant(variantID)
	if variant != nil && variant.Quantity == 0 && variant.Status != models.VariantStatusSoldOut {
		// Guarded flip: only marks soldout while the quantity is still
		// zero, so a concurrent edit restocking the variant wins.
		flip := bson.M{"$set": bson.M{"variants.$[v].status": models.VariantStatusSoldOut}}
		flipOpts := options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"v.id": variantID, "v.quantity": 0}},
		})
		if _, err := coll.UpdateOne(ctx, bson.M{"_id": listingID}, flip, flipOpts); err != nil {
			return nil, fmt.Errorf("failed to mark variant soldout: %w", err)
		}
		variant.Status = models.VariantStatusSoldOut
	}

	return &listing, nil
}

// explainDecrementMiss distinguishes the three reasons the conditional
// decrement can match nothing.
func (s *Store) explainDecrementMiss(ctx context.Context, collection, listingID, variantID string) error {
	listing, err := s.LoadListing(ctx, collection, listingID)
	if err != nil {
		return err
	}
	if listing == nil {
		return models.ErrListingNotFound
	}
	if listing.FindVariant(variantID) == nil {
		return models.ErrVariantNotFound
	}
	return models.ErrInsufficientStock
}
