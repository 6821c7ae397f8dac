package wallet

import (
	"context"
	"time"

	"agrichain-backend/internal/domain/uow"
	domainWallet "agrichain-backend/internal/domain/wallet"
	"agrichain-backend/pkg/id"

	"github.com/shopspring/decimal"
)

type Usecase struct {
	wallets domainWallet.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(wallets domainWallet.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{wallets: wallets, uow: tx}
}

type BalanceDTO struct {
	UserID  string          `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

type TransactionDTO struct {
	TxID        string          `json:"tx_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// Deposit credits the wallet and appends a DEPOSIT ledger row.
func (u *Usecase) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*BalanceDTO, error) {
	var dto *BalanceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return domainWallet.ErrNotFound
		}
		if err := w.Credit(amount); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		tx := &domainWallet.Transaction{
			TxID:        id.NewID32(),
			WalletID:    w.ID,
			Type:        domainWallet.TxDeposit,
			Description: "Added funds to wallet",
			Amount:      amount,
		}
		if err := r.Wallets.AppendTransaction(ctx, tx); err != nil {
			return err
		}
		dto = &BalanceDTO{UserID: w.UserID, Balance: w.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Debit removes funds if and only if the full amount is covered, appending
// a PURCHASE ledger row. Used for ad-hoc debits; order checkout and loan
// repayment have their own flows.
func (u *Usecase) Debit(ctx context.Context, userID string, amount decimal.Decimal, description string) (*BalanceDTO, error) {
	if description == "" {
		description = "Purchase transaction"
	}
	var dto *BalanceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		w, err := r.Wallets.GetByUserIDForUpdate(ctx, userID)
		if err != nil {
			return domainWallet.ErrNotFound
		}
		if err := w.Debit(amount); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		tx := &domainWallet.Transaction{
			TxID:        id.NewID32(),
			WalletID:    w.ID,
			Type:        domainWallet.TxPurchase,
			Description: description,
			Amount:      amount.Neg(),
		}
		if err := r.Wallets.AppendTransaction(ctx, tx); err != nil {
			return err
		}
		dto = &BalanceDTO{UserID: w.UserID, Balance: w.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Balance(ctx context.Context, userID string) (*BalanceDTO, error) {
	w, err := u.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domainWallet.ErrNotFound
	}
	return &BalanceDTO{UserID: w.UserID, Balance: w.Balance}, nil
}

// Transactions returns the ledger newest-first.
func (u *Usecase) Transactions(ctx context.Context, userID string) ([]TransactionDTO, error) {
	w, err := u.wallets.GetByUserID(ctx, userID)
	if err != nil {
		return nil, domainWallet.ErrNotFound
	}
	rows, err := u.wallets.TransactionsByWalletID(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(rows))
	for _, tx := range rows {
		out = append(out, TransactionDTO{
			TxID:        tx.TxID,
			Type:        string(tx.Type),
			Description: tx.Description,
			Amount:      tx.Amount,
			Date:        tx.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}
