package loanmock

import (
	"context"
	"errors"

	domain "agrichain-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies loan.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn              func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn     func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingLoanByFarmerIDFn func(ctx context.Context, farmerID string) (*domain.Loan, error)
	SaveFn                     func(ctx context.Context, l *domain.Loan) error
	AppendPaymentFn            func(ctx context.Context, p *domain.Payment) error
	ListByFarmerIDFn           func(ctx context.Context, farmerID string) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetPendingLoanByFarmerID(ctx context.Context, farmerID string) (*domain.Loan, error) {
	if m.GetPendingLoanByFarmerIDFn != nil {
		return m.GetPendingLoanByFarmerIDFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) AppendPayment(ctx context.Context, p *domain.Payment) error {
	if m.AppendPaymentFn != nil {
		return m.AppendPaymentFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByFarmerID(ctx context.Context, farmerID string) ([]domain.Loan, error) {
	if m.ListByFarmerIDFn != nil {
		return m.ListByFarmerIDFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}
