package wallet

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("wallet not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type TransactionType string

const (
	TxDeposit          TransactionType = "DEPOSIT"
	TxPurchase         TransactionType = "PURCHASE"
	TxSale             TransactionType = "SALE"
	TxLoanDisbursement TransactionType = "LOAN_DISBURSEMENT"
	TxLoanRepayment    TransactionType = "LOAN_REPAYMENT"
)

type Wallet struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	UserID    string          `gorm:"size:32;uniqueIndex:ux_wallets_user_active" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(18,2)" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Wallet) TableName() string { return "wallets" }

// Transaction is an append-only ledger row. Amount is signed: credits are
// positive, debits negative. The display balance is the transactional
// running sum on the wallet row; no per-row snapshot is stored.
type Transaction struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	TxID        string          `gorm:"size:32;uniqueIndex:ux_wallet_txs_tx_id" json:"tx_id"`
	WalletID    uint64          `gorm:"index:idx_wallet_txs_wallet" json:"-"`
	Type        TransactionType `gorm:"type:enum('DEPOSIT','PURCHASE','SALE','LOAN_DISBURSEMENT','LOAN_REPAYMENT')" json:"type"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "wallet_transactions" }

// Credit adds amount to the balance. Amount must be positive.
func (w *Wallet) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	w.Balance = w.Balance.Add(amount)
	return nil
}

// Debit subtracts amount from the balance, refusing to go negative.
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(w.Balance) {
		return ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	return nil
}
