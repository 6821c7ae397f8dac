package ordermock

import (
	"context"
	"errors"

	domain "agrichain-backend/internal/domain/order"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("ordermock: method not implemented")

// Repo is a function-backed mock that satisfies order.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, o *domain.Order) error
	GetByOrderIDFn          func(ctx context.Context, orderID string) (*domain.Order, error)
	GetByOrderIDForUpdateFn func(ctx context.Context, orderID string) (*domain.Order, error)
	SaveFn                  func(ctx context.Context, o *domain.Order) error
	ListByBuyerIDFn         func(ctx context.Context, buyerID string) ([]domain.Order, error)
	ListByFarmerIDFn        func(ctx context.Context, farmerID string) ([]domain.Order, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Order) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.GetByOrderIDFn != nil {
		return m.GetByOrderIDFn(ctx, orderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Order, error) {
	if m.GetByOrderIDForUpdateFn != nil {
		return m.GetByOrderIDForUpdateFn(ctx, orderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, o *domain.Order) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) ListByBuyerID(ctx context.Context, buyerID string) ([]domain.Order, error) {
	if m.ListByBuyerIDFn != nil {
		return m.ListByBuyerIDFn(ctx, buyerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByFarmerID(ctx context.Context, farmerID string) ([]domain.Order, error) {
	if m.ListByFarmerIDFn != nil {
		return m.ListByFarmerIDFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}
