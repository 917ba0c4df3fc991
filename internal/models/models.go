package models

import "time"

// Listing statuses (whole-listing toggle, set by operator action)
const (
	ListingStatusActive   = "Active"
	ListingStatusInactive = "Inactive"
)

// Variant statuses. A variant becomes soldout only when a purchase
// drives its quantity to zero; it is never flipped back automatically.
const (
	VariantStatusAvailable = "available"
	VariantStatusSoldOut   = "soldout"
)

// Variant is one purchasable SKU inside a listing. Prices travel as
// strings on the wire and in the documents; all arithmetic goes through
// the pricing package.
type Variant struct {
	ID            string `bson:"id" json:"id"`
	Color         string `bson:"color,omitempty" json:"color,omitempty"`
	Storage       string `bson:"storage,omitempty" json:"storage,omitempty"`
	Material      string `bson:"material,omitempty" json:"material,omitempty"`
	BatteryHealth string `bson:"battery_health,omitempty" json:"batteryHealth,omitempty"`
	Price         string `bson:"price" json:"price"`
	OriginalPrice string `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	PriceOff      string `bson:"price_off,omitempty" json:"priceOff,omitempty"`
	Quantity      int    `bson:"quantity" json:"quantity"`
	Status        string `bson:"status" json:"status"`
}

// VariantInput is the raw variant shape accepted by create/update.
// Quantity is a pointer so "missing" and "zero" stay distinguishable.
// ID is honored on update when the caller round-trips it; create always
// assigns fresh ids.
type VariantInput struct {
	ID            string `json:"id"`
	Color         string `json:"color"`
	Storage       string `json:"storage"`
	Material      string `json:"material"`
	BatteryHealth string `json:"batteryHealth"`
	Price         string `json:"price"`
	OriginalPrice string `json:"originalPrice"`
	Quantity      *int   `json:"quantity"`
}

// Listing is one catalog entry for a product family. Attributes are
// family-specific descriptive fields; the inventory core never reads
// them for stock logic.
type Listing struct {
	ID            string                 `bson:"_id" json:"id"`
	Family        string                 `bson:"family" json:"family"`
	Attributes    map[string]interface{} `bson:"attributes" json:"attributes"`
	Variants      []Variant              `bson:"variants" json:"variants"`
	ListingStatus string                 `bson:"listing_status" json:"listingStatus"`
	CreatedOn     time.Time              `bson:"created_on" json:"createdOn"`
	UpdatedOn     time.Time              `bson:"updated_on" json:"updatedOn"`
}

// FindVariant scans the listing's variants by identifier. A miss is a
// normal outcome, not an error.
func (l *Listing) FindVariant(variantID string) *Variant {
	for i := range l.Variants {
		if l.Variants[i].ID == variantID {
			return &l.Variants[i]
		}
	}
	return nil
}

// Alert types
const (
	AlertTypeSoldOut  = "soldout"
	AlertTypeLowStock = "low_stock"
)

// StockAlert records a variant that sold out or fell below the low
// stock threshold. Written by the alert worker, never by the purchase
// path itself.
type StockAlert struct {
	ID         string     `bson:"_id" json:"id"`
	Family     string     `bson:"family" json:"family"`
	ListingID  string     `bson:"listing_id" json:"listingId"`
	VariantID  string     `bson:"variant_id" json:"variantId"`
	AlertType  string     `bson:"alert_type" json:"alertType"`
	Quantity   int        `bson:"quantity" json:"quantity"`
	Threshold  int        `bson:"threshold" json:"threshold"`
	Resolved   bool       `bson:"resolved" json:"resolved"`
	CreatedAt  time.Time  `bson:"created_at" json:"createdAt"`
	ResolvedAt *time.Time `bson:"resolved_at,omitempty" json:"resolvedAt,omitempty"`
}

// ListFilter narrows listing queries. Zero values mean "no filter".
type ListFilter struct {
	Status string
	Skip   int64
	Limit  int64
}
