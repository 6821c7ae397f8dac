package listing

import (
	"context"

	"github.com/shopspring/decimal"
)

type SortBy string

const (
	SortNewest      SortBy = "newest"
	SortPriceLow    SortBy = "price_low"
	SortPriceHigh   SortBy = "price_high"
	SortHealthScore SortBy = "health_score"
)

// Filter narrows the marketplace view. Zero values mean "no constraint".
type Filter struct {
	CropType       string
	Search         string
	MinHealthScore float64
	MaxPrice       decimal.Decimal
	SortBy         SortBy
}

type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByListingID(ctx context.Context, listingID string) (*Listing, error)
	GetByListingIDForUpdate(ctx context.Context, listingID string) (*Listing, error)
	Save(ctx context.Context, l *Listing) error
	Delete(ctx context.Context, listingID string) error

	ListByFarmerID(ctx context.Context, farmerID string) ([]Listing, error)
	// Marketplace returns ACTIVE listings matching the filter.
	Marketplace(ctx context.Context, f Filter) ([]Listing, error)
	// SimilarActive returns up to limit ACTIVE listings of the same crop,
	// excluding the given listing.
	SimilarActive(ctx context.Context, cropType, excludeListingID string, limit int) ([]Listing, error)
}
