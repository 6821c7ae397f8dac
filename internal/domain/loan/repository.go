package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingLoanByFarmerID(ctx context.Context, farmerID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	AppendPayment(ctx context.Context, p *Payment) error
	ListByFarmerID(ctx context.Context, farmerID string) ([]Loan, error)
}
