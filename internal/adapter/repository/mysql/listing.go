package mysql

import (
	"context"

	listingDomain "agrichain-backend/internal/domain/listing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingRepository struct{ db *gorm.DB }

func NewListingRepository(db *gorm.DB) *ListingRepository { return &ListingRepository{db: db} }

func (r *ListingRepository) Create(ctx context.Context, l *listingDomain.Listing) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ListingRepository) GetByListingID(ctx context.Context, listingID string) (*listingDomain.Listing, error) {
	var out listingDomain.Listing
	res := r.db.WithContext(ctx).Where("listing_id = ?", listingID).First(&out)
	return &out, res.Error
}

func (r *ListingRepository) GetByListingIDForUpdate(ctx context.Context, listingID string) (*listingDomain.Listing, error) {
	var out listingDomain.Listing
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("listing_id = ?", listingID).
		First(&out)
	return &out, res.Error
}

func (r *ListingRepository) Save(ctx context.Context, l *listingDomain.Listing) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ListingRepository) Delete(ctx context.Context, listingID string) error {
	return r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Delete(&listingDomain.Listing{}).Error
}

func (r *ListingRepository) ListByFarmerID(ctx context.Context, farmerID string) ([]listingDomain.Listing, error) {
	var out []listingDomain.Listing
	res := r.db.WithContext(ctx).
		Where("farmer_id = ?", farmerID).
		Order("listed_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *ListingRepository) Marketplace(ctx context.Context, f listingDomain.Filter) ([]listingDomain.Listing, error) {
	q := r.db.WithContext(ctx).Where("status = ?", listingDomain.StatusActive)

	if f.CropType != "" && f.CropType != "All" {
		q = q.Where("LOWER(crop_type) = LOWER(?)", f.CropType)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("product_name LIKE ? OR crop_type LIKE ? OR location LIKE ?", like, like, like)
	}
	if f.MinHealthScore > 0 {
		q = q.Where("health_badge >= ?", f.MinHealthScore)
	}
	if f.MaxPrice.IsPositive() {
		q = q.Where("price_per_unit <= ?", f.MaxPrice)
	}

	switch f.SortBy {
	case listingDomain.SortPriceLow:
		q = q.Order("price_per_unit ASC")
	case listingDomain.SortPriceHigh:
		q = q.Order("price_per_unit DESC")
	case listingDomain.SortHealthScore:
		q = q.Order("health_badge DESC")
	default:
		q = q.Order("listed_date DESC, id DESC")
	}

	var out []listingDomain.Listing
	res := q.Find(&out)
	return out, res.Error
}

func (r *ListingRepository) SimilarActive(ctx context.Context, cropType, excludeListingID string, limit int) ([]listingDomain.Listing, error) {
	var out []listingDomain.Listing
	res := r.db.WithContext(ctx).
		Where("crop_type = ? AND status = ? AND listing_id <> ?", cropType, listingDomain.StatusActive, excludeListingID).
		Limit(limit).
		Find(&out)
	return out, res.Error
}
