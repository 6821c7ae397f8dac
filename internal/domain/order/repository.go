package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*Order, error)
	// Save persists the order together with its timeline steps.
	Save(ctx context.Context, o *Order) error

	ListByBuyerID(ctx context.Context, buyerID string) ([]Order, error)
	ListByFarmerID(ctx context.Context, farmerID string) ([]Order, error)
}
