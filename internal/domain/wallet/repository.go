package wallet

import "context"

type Repository interface {
	Create(ctx context.Context, w *Wallet) error
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	// GetByUserIDForUpdate locks the wallet row for the duration of the
	// surrounding transaction.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Wallet, error)
	Save(ctx context.Context, w *Wallet) error

	AppendTransaction(ctx context.Context, tx *Transaction) error
	// TransactionsByWalletID returns ledger rows newest-first.
	TransactionsByWalletID(ctx context.Context, walletID uint64) ([]Transaction, error)
}
