// Package catalog declares the product families the service manages.
// Stock and pricing logic is identical across families; only the
// required fields and the storage collection differ, so each family is
// a small descriptor consumed by the generic services.
package catalog

import (
	"catalog-service/internal/models"
)

// Family describes one product family.
type Family struct {
	// Name is the canonical lowercase identifier ("iphone").
	Name string
	// PathName is the segment used in route names ("iPhone" as in
	// PUT /purchaseiPhone/:id).
	PathName string
	// PluralPathName is the segment used in collection route names
	// ("iPhones" as in GET /getAlliPhones).
	PluralPathName string
	// Collection is the mongo collection holding the family's listings.
	Collection string
	// RequiredAttributes are listing-level fields checked at
	// create/update, in check order.
	RequiredAttributes []string
	// RequiredVariantFields are per-variant fields checked at
	// create/update, in check order.
	RequiredVariantFields []string
}

var families = []Family{
	{
		Name:                  "iphone",
		PathName:              "iPhone",
		PluralPathName:        "iPhones",
		Collection:            "iphones",
		RequiredAttributes:    []string{"model", "releaseYear", "features", "condition", "age", "categoryName"},
		RequiredVariantFields: []string{"color", "storage", "price", "originalPrice", "quantity", "batteryHealth"},
	},
	{
		Name:                  "android",
		PathName:              "Android",
		PluralPathName:        "Androids",
		Collection:            "androids",
		RequiredAttributes:    []string{"model", "releaseYear", "features", "condition", "age", "categoryName"},
		RequiredVariantFields: []string{"color", "storage", "price", "originalPrice", "quantity"},
	},
	{
		Name:                  "accessory",
		PathName:              "Accessory",
		PluralPathName:        "Accessories",
		Collection:            "accessories",
		RequiredAttributes:    []string{"name", "type", "releaseYear", "compatibility"},
		RequiredVariantFields: []string{"color", "price", "originalPrice", "quantity"},
	},
	{
		Name:                  "product",
		PathName:              "Product",
		PluralPathName:        "Products",
		Collection:            "products",
		RequiredAttributes:    []string{"model", "type", "releaseYear"},
		RequiredVariantFields: []string{"color", "price", "quantity"},
	},
}

// Families returns all product families in registration order.
func Families() []Family {
	return families
}

// ByName looks a family up by its canonical name.
func ByName(name string) (Family, bool) {
	for _, f := range families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// ValidateAttributes checks the family's mandatory listing attributes
// and names the first missing one.
func (f Family) ValidateAttributes(attrs map[string]interface{}) error {
	for _, key := range f.RequiredAttributes {
		v, ok := attrs[key]
		if !ok || v == nil || v == "" {
			return models.NewValidationError("%s is required", key)
		}
	}
	return nil
}

// ValidateVariant checks the family's mandatory variant fields in fixed
// order and names the first missing one.
func (f Family) ValidateVariant(in models.VariantInput) error {
	for _, field := range f.RequiredVariantFields {
		if !variantFieldPresent(in, field) {
			return models.NewValidationError("%s is required", field)
		}
	}
	return nil
}

func variantFieldPresent(in models.VariantInput, field string) bool {
	switch field {
	case "color":
		return in.Color != ""
	case "storage":
		return in.Storage != ""
	case "material":
		return in.Material != ""
	case "batteryHealth":
		return in.BatteryHealth != ""
	case "price":
		return in.Price != ""
	case "originalPrice":
		return in.OriginalPrice != ""
	case "quantity":
		return in.Quantity != nil
	default:
		return false
	}
}
