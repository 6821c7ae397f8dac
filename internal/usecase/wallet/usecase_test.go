package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrichain-backend/internal/domain/uow"
	domainWallet "agrichain-backend/internal/domain/wallet"
	"agrichain-backend/internal/testutil/uowmock"
	"agrichain-backend/internal/testutil/walletmock"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const testUserID = "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1"

func newFixture(balance int64) (*Usecase, *domainWallet.Wallet, *[]domainWallet.Transaction) {
	w := &domainWallet.Wallet{ID: 7, UserID: testUserID, Balance: decimal.NewFromInt(balance)}
	ledger := &[]domainWallet.Transaction{}

	wallets := &walletmock.Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*domainWallet.Wallet, error) {
			if userID != w.UserID {
				return nil, gorm.ErrRecordNotFound
			}
			return w, nil
		},
		GetByUserIDForUpdateFn: func(_ context.Context, userID string) (*domainWallet.Wallet, error) {
			if userID != w.UserID {
				return nil, gorm.ErrRecordNotFound
			}
			return w, nil
		},
		AppendTransactionFn: func(_ context.Context, tx *domainWallet.Transaction) error {
			*ledger = append(*ledger, *tx)
			return nil
		},
		TransactionsByWalletIDFn: func(_ context.Context, walletID uint64) ([]domainWallet.Transaction, error) {
			return *ledger, nil
		},
	}
	uc := NewUsecase(wallets, uowmock.Passthrough(uow.Repos{Wallets: wallets}))
	return uc, w, ledger
}

func TestDepositCreditsAndRecords(t *testing.T) {
	uc, w, ledger := newFixture(100)

	dto, err := uc.Deposit(context.Background(), testUserID, decimal.NewFromInt(500))
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if !dto.Balance.Equal(decimal.NewFromInt(600)) || !w.Balance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("balance = %s, want 600", dto.Balance)
	}
	if len(*ledger) != 1 || (*ledger)[0].Type != domainWallet.TxDeposit || !(*ledger)[0].Amount.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("deposit ledger row wrong: %+v", *ledger)
	}
}

func TestDepositRejectsNonPositiveAmount(t *testing.T) {
	uc, _, ledger := newFixture(100)

	_, err := uc.Deposit(context.Background(), testUserID, decimal.Zero)
	if !errors.Is(err, domainWallet.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if len(*ledger) != 0 {
		t.Errorf("rejected deposit wrote a ledger row")
	}
}

func TestDebitRefusesOverdraft(t *testing.T) {
	uc, w, ledger := newFixture(100)

	_, err := uc.Debit(context.Background(), testUserID, decimal.NewFromInt(101), "")
	if !errors.Is(err, domainWallet.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if !w.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("balance changed on refused debit: %s", w.Balance)
	}
	if len(*ledger) != 0 {
		t.Errorf("refused debit wrote a ledger row")
	}
}

func TestDebitRecordsNegativeAmount(t *testing.T) {
	uc, _, ledger := newFixture(100)

	dto, err := uc.Debit(context.Background(), testUserID, decimal.NewFromInt(40), "Market purchase")
	if err != nil {
		t.Fatalf("Debit: %v", err)
	}
	if !dto.Balance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("balance = %s, want 60", dto.Balance)
	}
	row := (*ledger)[0]
	if row.Type != domainWallet.TxPurchase || !row.Amount.Equal(decimal.NewFromInt(-40)) || row.Description != "Market purchase" {
		t.Errorf("debit ledger row wrong: %+v", row)
	}
}

func TestTransactionsFormatsDates(t *testing.T) {
	uc, _, ledger := newFixture(0)
	when := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	*ledger = append(*ledger, domainWallet.Transaction{
		TxID:      "11111111111111111111111111111111",
		Type:      domainWallet.TxDeposit,
		Amount:    decimal.NewFromInt(500),
		CreatedAt: when,
	})

	rows, err := uc.Transactions(context.Background(), testUserID)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(rows) != 1 || rows[0].Date != "2026-05-02T09:30:00Z" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestBalanceUnknownUser(t *testing.T) {
	uc, _, _ := newFixture(0)
	_, err := uc.Balance(context.Background(), "ffffffffffffffffffffffffffffffff")
	if !errors.Is(err, domainWallet.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
