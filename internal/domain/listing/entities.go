package listing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("listing not found")
)

type Status string

const (
	StatusActive Status = "ACTIVE"
	StatusSold   Status = "SOLD"
	StatusDraft  Status = "DRAFT"
)

type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "DELIVERY"
	DeliveryPickup  DeliveryMethod = "PICKUP"
)

type Listing struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	ListingID      string          `gorm:"size:32;uniqueIndex:ux_listings_listing_id_active" json:"listing_id"`
	FarmerID       string          `gorm:"size:32;index:idx_listings_farmer" json:"farmer_id"`
	ProductName    string          `gorm:"size:255" json:"product_name"`
	CropType       string          `gorm:"size:64;index:idx_listings_crop" json:"crop_type"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,2)" json:"quantity"`
	Unit           string          `gorm:"size:16;default:'kg'" json:"unit"`
	PricePerUnit   decimal.Decimal `gorm:"type:decimal(18,2)" json:"price_per_unit"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_price"`
	AssessmentID   string          `gorm:"size:32" json:"assessment_id,omitempty"`
	HealthBadge    float64         `gorm:"type:decimal(3,2)" json:"health_badge,omitempty"`
	Status         Status          `gorm:"type:enum('ACTIVE','SOLD','DRAFT');default:'ACTIVE'" json:"status"`
	ListedDate     time.Time       `gorm:"type:date" json:"listed_date"`
	Location       string          `gorm:"size:255" json:"location"`
	Description    string          `gorm:"type:text" json:"description"`
	ViewCount      int             `gorm:"default:0" json:"view_count"`
	DeliveryMethod DeliveryMethod  `gorm:"type:enum('DELIVERY','PICKUP');default:'DELIVERY'" json:"delivery_method"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Listing) TableName() string { return "listings" }

// ReserveStock removes qty from available stock and flips the listing to
// SOLD when nothing remains. Callers must hold a row lock and have already
// verified qty against availability.
func (l *Listing) ReserveStock(qty decimal.Decimal) {
	l.Quantity = l.Quantity.Sub(qty)
	if !l.Quantity.IsPositive() {
		l.Status = StatusSold
	}
}
