package mysql

import (
	"context"

	orderDomain "agrichain-backend/internal/domain/order"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{db: db} }

func (r *OrderRepository) Create(ctx context.Context, o *orderDomain.Order) error {
	// inserts the timeline steps along with the order row
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	var out orderDomain.Order
	res := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("order_id = ?", orderID).
		First(&out)
	return &out, res.Error
}

func (r *OrderRepository) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	var out orderDomain.Order
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("order_id = ?", orderID).
		First(&out)
	if res.Error != nil {
		return &out, res.Error
	}
	// the lock clause cannot be preloaded; fetch timeline separately
	err := r.db.WithContext(ctx).
		Where("order_id = ?", out.ID).
		Order("position ASC").
		Find(&out.Timeline).Error
	return &out, err
}

func (r *OrderRepository) Save(ctx context.Context, o *orderDomain.Order) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(o).Error
}

func (r *OrderRepository) ListByBuyerID(ctx context.Context, buyerID string) ([]orderDomain.Order, error) {
	var out []orderDomain.Order
	res := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("buyer_id = ?", buyerID).
		Order("order_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *OrderRepository) ListByFarmerID(ctx context.Context, farmerID string) ([]orderDomain.Order, error) {
	var out []orderDomain.Order
	res := r.db.WithContext(ctx).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("farmer_id = ?", farmerID).
		Order("order_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
