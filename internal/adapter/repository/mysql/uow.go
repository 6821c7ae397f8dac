package mysql

import (
	"context"

	"agrichain-backend/internal/domain/loan"
	"agrichain-backend/internal/domain/order"
	"agrichain-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:       &UserRepository{db: tx},
		Wallets:     &WalletRepository{db: tx},
		Listings:    &ListingRepository{db: tx},
		Orders:      &OrderRepository{db: tx},
		Loans:       &LoanRepository{db: tx},
		Assessments: &AssessmentRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinOrderTx(ctx context.Context, orderID string, fn func(r uow.Repos, o *order.Order) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the order row up-front to prevent races
		o, err := r.Orders.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return order.ErrNotFound
		}
		return fn(r, o)
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return loan.ErrNotFound
		}
		return fn(r, l)
	})
}
