package order

import (
	"errors"
	"time"

	"agrichain-backend/internal/domain/listing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid order state transition")
	ErrListingUnavailable = errors.New("listing unavailable or insufficient stock")
	ErrNotOrderFarmer     = errors.New("order does not belong to this farmer")
	ErrNotOrderBuyer      = errors.New("order does not belong to this buyer")
	ErrInvalidRating      = errors.New("rating must be between 1 and 5")
)

type Status string

const (
	StatusPaid       Status = "PAID"
	StatusDispatched Status = "DISPATCHED"
	StatusCompleted  Status = "COMPLETED"
)

type EscrowStatus string

const (
	EscrowLocked   EscrowStatus = "LOCKED"
	EscrowReleased EscrowStatus = "RELEASED"
)

type StepStatus string

const (
	StepOrdered    StepStatus = "ORDERED"
	StepPaid       StepStatus = "PAID"
	StepDispatched StepStatus = "DISPATCHED"
	StepReceived   StepStatus = "RECEIVED"
	StepReleased   StepStatus = "RELEASED"
)

// FeeRate is the 2% service fee charged to the buyer on top of the order
// total. It is deducted from the buyer's wallet at checkout and is never
// forwarded to the farmer.
var FeeRate = decimal.New(2, -2)

// ServiceFee rounds to whole currency units, matching the checkout total
// the buyer is shown.
func ServiceFee(total decimal.Decimal) decimal.Decimal {
	return total.Mul(FeeRate).Round(0)
}

// EstimatedDeliveryDays is the flat fulfilment estimate attached to new
// orders.
const EstimatedDeliveryDays = 3

type Order struct {
	ID                uint64                 `gorm:"primaryKey;column:id" json:"-"`
	OrderID           string                 `gorm:"size:32;uniqueIndex:ux_orders_order_id_active" json:"order_id"`
	BuyerID           string                 `gorm:"size:32;index:idx_orders_buyer" json:"buyer_id"`
	ListingID         string                 `gorm:"size:32;index:idx_orders_listing" json:"listing_id"`
	FarmerID          string                 `gorm:"size:32;index:idx_orders_farmer" json:"farmer_id"`
	ProductName       string                 `gorm:"size:255" json:"product_name"`
	Quantity          decimal.Decimal        `gorm:"type:decimal(18,2)" json:"quantity"`
	Unit              string                 `gorm:"size:16" json:"unit"`
	PricePerUnit      decimal.Decimal        `gorm:"type:decimal(18,2)" json:"price_per_unit"`
	TotalAmount       decimal.Decimal        `gorm:"type:decimal(18,2)" json:"total_amount"`
	Status            Status                 `gorm:"type:enum('PAID','DISPATCHED','COMPLETED');default:'PAID'" json:"status"`
	EscrowStatus      EscrowStatus           `gorm:"type:enum('LOCKED','RELEASED');default:'LOCKED'" json:"escrow_status"`
	OrderDate         time.Time              `gorm:"type:date" json:"order_date"`
	EstimatedDelivery time.Time              `gorm:"type:date" json:"estimated_delivery"`
	DeliveryAddress   string                 `gorm:"type:text" json:"delivery_address"`
	DeliveryMethod    listing.DeliveryMethod `gorm:"type:enum('DELIVERY','PICKUP');default:'DELIVERY'" json:"delivery_method"`
	CompletedDate     *time.Time             `gorm:"type:date" json:"completed_date,omitempty"`
	BuyerRating       *int                   `json:"buyer_rating,omitempty"`
	BuyerReview       string                 `gorm:"type:text" json:"buyer_review,omitempty"`
	Timeline          []TimelineStep         `gorm:"foreignKey:OrderID;references:ID" json:"timeline"`
	CreatedAt         time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt         `gorm:"index" json:"-"`
}

func (Order) TableName() string { return "orders" }

type TimelineStep struct {
	ID        uint64     `gorm:"primaryKey;column:id" json:"-"`
	OrderID   uint64     `gorm:"index:idx_order_timeline_order" json:"-"`
	Status    StepStatus `gorm:"type:enum('ORDERED','PAID','DISPATCHED','RECEIVED','RELEASED')" json:"status"`
	StepDate  *time.Time `gorm:"type:date" json:"date,omitempty"`
	Completed bool       `json:"completed"`
	Position  int        `json:"-"`
}

func (TimelineStep) TableName() string { return "order_timeline" }

// NewTimeline builds the 5-stage progress record for a fresh order.
// Payment is captured into escrow at checkout, so ORDERED and PAID are
// completed immediately.
func NewTimeline(today time.Time) []TimelineStep {
	d := today
	return []TimelineStep{
		{Status: StepOrdered, StepDate: &d, Completed: true, Position: 0},
		{Status: StepPaid, StepDate: &d, Completed: true, Position: 1},
		{Status: StepDispatched, Position: 2},
		{Status: StepReceived, Position: 3},
		{Status: StepReleased, Position: 4},
	}
}

// CompleteStepsThrough marks every step up to and including position as
// completed, stamping date on steps that have none yet.
func (o *Order) CompleteStepsThrough(position int, date time.Time) {
	for i := range o.Timeline {
		if o.Timeline[i].Position > position {
			continue
		}
		if !o.Timeline[i].Completed {
			d := date
			o.Timeline[i].StepDate = &d
			o.Timeline[i].Completed = true
		}
	}
}

// ReceiptEligible reports whether the buyer may confirm receipt.
// Dispatched orders are always eligible; pickup orders may be confirmed
// straight from PAID since the farmer never records a dispatch.
func (o *Order) ReceiptEligible() bool {
	if o.Status == StatusDispatched {
		return true
	}
	return o.Status == StatusPaid && o.DeliveryMethod == listing.DeliveryPickup
}
