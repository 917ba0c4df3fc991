package worker

import (
	"context"
	"log"
	"time"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertStore is the slice of the store the alert worker needs
type AlertStore interface {
	InsertStockAlert(ctx context.Context, alert *models.StockAlert) error
	HasOpenAlert(ctx context.Context, family, listingID, variantID string) (bool, error)
}

// AlertWorker consumes catalog events and turns sold-out and low-stock
// transitions into stock alerts. Alerts are deduplicated: one open
// alert per variant at a time.
type AlertWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        AlertStore
	logger       *zap.Logger
}

// NewAlertWorker creates a new alert worker
func NewAlertWorker(consumer *broker.Consumer, store AlertStore) *AlertWorker {
	w := &AlertWorker{
		consumer: consumer,
		store:    store,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnVariantSoldOut(w.handleSoldOut)
	eventHandler.OnStockLow(w.handleStockLow)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *AlertWorker) Start(ctx context.Context) error {
	log.Println("Starting alert worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AlertWorker) Stop() error {
	log.Println("Stopping alert worker...")
	return w.consumer.Close()
}

func (w *AlertWorker) handleSoldOut(ctx context.Context, event *models.VariantSoldOutEvent) error {
	return w.record(ctx, event.Family, event.ListingID, event.VariantID, models.AlertTypeSoldOut, 0, 0)
}

func (w *AlertWorker) handleStockLow(ctx context.Context, event *models.StockLowEvent) error {
	return w.record(ctx, event.Family, event.ListingID, event.VariantID, models.AlertTypeLowStock, event.Remaining, event.Threshold)
}

func (w *AlertWorker) record(ctx context.Context, family, listingID, variantID, alertType string, quantity, threshold int) error {
	open, err := w.store.HasOpenAlert(ctx, family, listingID, variantID)
	if err != nil {
		return err
	}
	if open {
		return nil
	}

	alert := &models.StockAlert{
		ID:        uuid.New().String(),
		Family:    family,
		ListingID: listingID,
		VariantID: variantID,
		AlertType: alertType,
		Quantity:  quantity,
		Threshold: threshold,
		Resolved:  false,
		CreatedAt: time.Now(),
	}

	if err := w.store.InsertStockAlert(ctx, alert); err != nil {
		return err
	}

	util.StockAlertsCreatedTotal.WithLabelValues(alertType).Inc()
	w.logger.Info("Stock alert created",
		zap.String("family", family),
		zap.String("listing_id", listingID),
		zap.String("variant_id", variantID),
		zap.String("type", alertType))
	return nil
}
