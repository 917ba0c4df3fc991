package store

import (
	"context"
	"fmt"
	"time"

	"catalog-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertStockAlert records a new stock alert
func (s *Store) InsertStockAlert(ctx context.Context, alert *models.StockAlert) error {
	if _, err := s.collection(alertsCollection).InsertOne(ctx, alert); err != nil {
		return fmt.Errorf("failed to insert stock alert: %w", err)
	}
	return nil
}

// HasOpenAlert reports whether an unresolved alert already exists for
// the variant. The worker uses it to avoid duplicate alerts.
func (s *Store) HasOpenAlert(ctx context.Context, family, listingID, variantID string) (bool, error) {
	filter := bson.M{
		"family":     family,
		"listing_id": listingID,
		"variant_id": variantID,
		"resolved":   false,
	}
	err := s.collection(alertsCollection).FindOne(ctx, filter).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// OpenAlerts returns all unresolved stock alerts
func (s *Store) OpenAlerts(ctx context.Context) ([]models.StockAlert, error) {
	cursor, err := s.collection(alertsCollection).Find(ctx, bson.M{"resolved": false})
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}

	var alerts []models.StockAlert
	if err := cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts: %w", err)
	}
	return alerts, nil
}

// ResolveStockAlert marks an alert resolved and reports whether it
// existed.
func (s *Store) ResolveStockAlert(ctx context.Context, id string) (bool, error) {
	now := time.Now()
	res, err := s.collection(alertsCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"resolved": true, "resolved_at": now}})
	if err != nil {
		return false, fmt.Errorf("failed to resolve alert %s: %w", id, err)
	}
	return res.MatchedCount > 0, nil
}
