package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrPendingExists     = errors.New("farmer already has a pending loan")
	ErrAmountExceedsTier = errors.New("amount exceeds credit tier ceiling")
	ErrAmountBelowFloor  = errors.New("amount below minimum loan size")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
)

type Loan struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID         string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	FarmerID       string          `gorm:"size:32;index:idx_loans_farmer_active" json:"farmer_id"`
	Principal      decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(6,1)" json:"interest_rate"`
	DurationMonths int             `json:"duration_months"`
	Status         Status          `gorm:"type:enum('PENDING','APPROVED','ACTIVE','COMPLETED','REJECTED');default:'PENDING'" json:"status"`
	Purpose        string          `gorm:"type:text" json:"purpose"`
	RequestDate    time.Time       `gorm:"type:date" json:"request_date"`
	ApprovalDate   *time.Time      `gorm:"type:date" json:"approval_date,omitempty"`
	DueDate        *time.Time      `gorm:"type:date" json:"due_date,omitempty"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount_paid"`
	MonthlyPayment decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_payment"`
	AssessmentID   string          `gorm:"size:32" json:"assessment_id,omitempty"`
	AdminNotes     string          `gorm:"type:text" json:"admin_notes,omitempty"`
	StateUpdatedAt time.Time       `gorm:"autoCreateTime" json:"state_updated_at"`
	Payments       []Payment       `gorm:"foreignKey:LoanID;references:ID" json:"payment_history"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

type PaymentStatus string

const PaymentPaid PaymentStatus = "PAID"

type Payment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID      uint64          `gorm:"index:idx_loan_payments_loan" json:"-"`
	PaymentDate time.Time       `gorm:"type:date" json:"date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Status      PaymentStatus   `gorm:"type:enum('PAID');default:'PAID'" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"-"`
}

func (Payment) TableName() string { return "loan_payments" }

// Repayable reports whether the loan can accept payments. Only a
// disbursed loan carries a balance to repay.
func (l *Loan) Repayable() bool {
	return l.Status == StatusActive
}

// Settled reports whether accumulated payments cover principal plus
// interest.
func (l *Loan) Settled() bool {
	return l.AmountPaid.GreaterThanOrEqual(TotalRepayable(l.Principal, l.InterestRate))
}
