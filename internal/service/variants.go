package service

import (
	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/pricing"

	"github.com/google/uuid"
)

// decrementVariant is the only quantity mutation in the purchase flow.
// It rejects non-positive amounts and oversells without touching the
// variant, and flips status to soldout exactly when quantity reaches
// zero. It never forces a variant back to available.
func decrementVariant(v *models.Variant, amount int) error {
	if amount <= 0 {
		return models.ErrInvalidQuantity
	}
	if amount > v.Quantity {
		return models.ErrInsufficientStock
	}

	v.Quantity -= amount
	if v.Quantity == 0 {
		v.Status = models.VariantStatusSoldOut
	}
	return nil
}

// buildVariants validates raw variants against the family's required
// fields, computes per-variant discounts, and assigns identifiers.
// When keepIDs is set, caller-supplied ids are honored (update
// round-trip); otherwise every variant gets a fresh id.
func buildVariants(fam catalog.Family, inputs []models.VariantInput, keepIDs bool) ([]models.Variant, error) {
	if len(inputs) == 0 {
		return nil, models.NewValidationError("At least one variant is required")
	}

	variants := make([]models.Variant, 0, len(inputs))
	for _, in := range inputs {
		if err := fam.ValidateVariant(in); err != nil {
			return nil, err
		}
		if *in.Quantity < 0 {
			return nil, models.NewValidationError("quantity cannot be negative")
		}

		v := models.Variant{
			ID:            in.ID,
			Color:         in.Color,
			Storage:       in.Storage,
			Material:      in.Material,
			BatteryHealth: in.BatteryHealth,
			Price:         in.Price,
			OriginalPrice: in.OriginalPrice,
			Quantity:      *in.Quantity,
			Status:        models.VariantStatusAvailable,
		}
		if !keepIDs || v.ID == "" {
			v.ID = uuid.New().String()
		}
		if v.Price != "" && v.OriginalPrice != "" {
			v.PriceOff = pricing.Calculate(v.OriginalPrice, v.Price)
		}

		variants = append(variants, v)
	}
	return variants, nil
}

// mergeVariants implements the merge-by-id update alternative: incoming
// variants that match an existing id keep that variant's quantity and
// status, so a catalog edit does not restock sold inventory. Unmatched
// incoming variants are appended as new; existing variants absent from
// the input are dropped.
func mergeVariants(existing, incoming []models.Variant) []models.Variant {
	byID := make(map[string]*models.Variant, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	merged := make([]models.Variant, 0, len(incoming))
	for _, v := range incoming {
		if prev, ok := byID[v.ID]; ok {
			v.Quantity = prev.Quantity
			v.Status = prev.Status
		}
		merged = append(merged, v)
	}
	return merged
}
