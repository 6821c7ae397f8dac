package listingmock

import (
	"context"
	"errors"

	domain "agrichain-backend/internal/domain/listing"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("listingmock: method not implemented")

// Repo is a function-backed mock that satisfies listing.Repository.
type Repo struct {
	CreateFn                  func(ctx context.Context, l *domain.Listing) error
	GetByListingIDFn          func(ctx context.Context, listingID string) (*domain.Listing, error)
	GetByListingIDForUpdateFn func(ctx context.Context, listingID string) (*domain.Listing, error)
	SaveFn                    func(ctx context.Context, l *domain.Listing) error
	DeleteFn                  func(ctx context.Context, listingID string) error
	ListByFarmerIDFn          func(ctx context.Context, farmerID string) ([]domain.Listing, error)
	MarketplaceFn             func(ctx context.Context, f domain.Filter) ([]domain.Listing, error)
	SimilarActiveFn           func(ctx context.Context, cropType, excludeListingID string, limit int) ([]domain.Listing, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Listing) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByListingID(ctx context.Context, listingID string) (*domain.Listing, error) {
	if m.GetByListingIDFn != nil {
		return m.GetByListingIDFn(ctx, listingID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByListingIDForUpdate(ctx context.Context, listingID string) (*domain.Listing, error) {
	if m.GetByListingIDForUpdateFn != nil {
		return m.GetByListingIDForUpdateFn(ctx, listingID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Listing) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, listingID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, listingID)
	}
	return nil
}

func (m *Repo) ListByFarmerID(ctx context.Context, farmerID string) ([]domain.Listing, error) {
	if m.ListByFarmerIDFn != nil {
		return m.ListByFarmerIDFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Marketplace(ctx context.Context, f domain.Filter) ([]domain.Listing, error) {
	if m.MarketplaceFn != nil {
		return m.MarketplaceFn(ctx, f)
	}
	return nil, errUnimplemented
}

func (m *Repo) SimilarActive(ctx context.Context, cropType, excludeListingID string, limit int) ([]domain.Listing, error) {
	if m.SimilarActiveFn != nil {
		return m.SimilarActiveFn(ctx, cropType, excludeListingID, limit)
	}
	return nil, errUnimplemented
}
