package uow

import (
	"context"

	"agrichain-backend/internal/domain/assessment"
	"agrichain-backend/internal/domain/listing"
	"agrichain-backend/internal/domain/loan"
	"agrichain-backend/internal/domain/order"
	"agrichain-backend/internal/domain/user"
	"agrichain-backend/internal/domain/wallet"
)

type Repos struct {
	Users       user.Repository
	Wallets     wallet.Repository
	Listings    listing.Repository
	Orders      order.Repository
	Loans       loan.Repository
	Assessments assessment.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the order row first, then pass it in
	WithinOrderTx(ctx context.Context, orderID string, fn func(r Repos, o *order.Order) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
