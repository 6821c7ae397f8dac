package walletmock

import (
	"context"
	"errors"

	domain "agrichain-backend/internal/domain/wallet"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("walletmock: method not implemented")

// Repo is a function-backed mock that satisfies wallet.Repository. Fill in
// only the fields a test needs.
type Repo struct {
	CreateFn                 func(ctx context.Context, w *domain.Wallet) error
	GetByUserIDFn            func(ctx context.Context, userID string) (*domain.Wallet, error)
	GetByUserIDForUpdateFn   func(ctx context.Context, userID string) (*domain.Wallet, error)
	SaveFn                   func(ctx context.Context, w *domain.Wallet) error
	AppendTransactionFn      func(ctx context.Context, tx *domain.Transaction) error
	TransactionsByWalletIDFn func(ctx context.Context, walletID uint64) ([]domain.Transaction, error)
}

func (m *Repo) Create(ctx context.Context, w *domain.Wallet) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, w *domain.Wallet) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, w)
	}
	return nil
}

func (m *Repo) AppendTransaction(ctx context.Context, tx *domain.Transaction) error {
	if m.AppendTransactionFn != nil {
		return m.AppendTransactionFn(ctx, tx)
	}
	return nil
}

func (m *Repo) TransactionsByWalletID(ctx context.Context, walletID uint64) ([]domain.Transaction, error) {
	if m.TransactionsByWalletIDFn != nil {
		return m.TransactionsByWalletIDFn(ctx, walletID)
	}
	return nil, errUnimplemented
}
