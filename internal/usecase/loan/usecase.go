package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainLoan "agrichain-backend/internal/domain/loan"
	"agrichain-backend/internal/domain/uow"
	domainUser "agrichain-backend/internal/domain/user"
	domainWallet "agrichain-backend/internal/domain/wallet"
	"agrichain-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	loans domainLoan.Repository
	users domainUser.Repository
	uow   uow.UnitOfWork
}

func NewUsecase(loans domainLoan.Repository, users domainUser.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, users: users, uow: tx}
}

type ApplyInput struct {
	FarmerID       string          `json:"farmer_id"`
	Amount         decimal.Decimal `json:"amount"`
	DurationMonths int             `json:"duration_months"`
	Purpose        string          `json:"purpose"`
	AssessmentID   string          `json:"assessment_id,omitempty"`
}

type PaymentDTO struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}

type LoanDTO struct {
	LoanID         string          `json:"loan_id"`
	FarmerID       string          `json:"farmer_id"`
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	DurationMonths int             `json:"duration_months"`
	Status         string          `json:"status"`
	Purpose        string          `json:"purpose"`
	RequestDate    string          `json:"request_date"`
	ApprovalDate   *string         `json:"approval_date,omitempty"`
	DueDate        *string         `json:"due_date,omitempty"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	AssessmentID   string          `json:"assessment_id,omitempty"`
	AdminNotes     string          `json:"admin_notes,omitempty"`
	PaymentHistory []PaymentDTO    `json:"payment_history"`
}

func dateStr(t time.Time) string { return t.Format("2006-01-02") }

func today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toDTO(l *domainLoan.Loan) *LoanDTO {
	dto := &LoanDTO{
		LoanID:         l.LoanID,
		FarmerID:       l.FarmerID,
		Amount:         l.Principal,
		InterestRate:   l.InterestRate,
		DurationMonths: l.DurationMonths,
		Status:         string(l.Status),
		Purpose:        l.Purpose,
		RequestDate:    dateStr(l.RequestDate),
		AmountPaid:     l.AmountPaid,
		MonthlyPayment: l.MonthlyPayment,
		AssessmentID:   l.AssessmentID,
		AdminNotes:     l.AdminNotes,
		PaymentHistory: make([]PaymentDTO, 0, len(l.Payments)),
	}
	if l.ApprovalDate != nil {
		s := dateStr(*l.ApprovalDate)
		dto.ApprovalDate = &s
	}
	if l.DueDate != nil {
		s := dateStr(*l.DueDate)
		dto.DueDate = &s
	}
	for _, p := range l.Payments {
		dto.PaymentHistory = append(dto.PaymentHistory, PaymentDTO{
			Date:   dateStr(p.PaymentDate),
			Amount: p.Amount,
			Status: string(p.Status),
		})
	}
	return dto
}

// Apply creates a PENDING loan. Interest rate and monthly payment are
// computed once here and fixed for the life of the loan. The tier ceiling
// from the farmer's credit score is enforced server-side.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if in.DurationMonths <= 0 || !in.Amount.IsPositive() {
		return nil, errors.New("invalid input")
	}
	farmer, err := u.users.GetByUserID(ctx, in.FarmerID)
	if err != nil {
		return nil, domainUser.ErrNotFound
	}
	if farmer.Role != domainUser.RoleFarmer {
		return nil, domainUser.ErrNotFarmer
	}
	if in.Amount.LessThan(domainLoan.MinLoanAmount) {
		return nil, domainLoan.ErrAmountBelowFloor
	}
	if in.Amount.GreaterThan(domainLoan.MaxLoanAmount(farmer.CreditScore)) {
		return nil, domainLoan.ErrAmountExceedsTier
	}

	// Block if the farmer already has a pending application.
	pending, err := u.loans.GetPendingLoanByFarmerID(ctx, in.FarmerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", domainLoan.ErrPendingExists, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &domainLoan.Loan{
		LoanID:         id.NewID32(),
		FarmerID:       in.FarmerID,
		Principal:      in.Amount,
		InterestRate:   domainLoan.InterestRate(in.Amount, in.DurationMonths),
		DurationMonths: in.DurationMonths,
		Status:         domainLoan.StatusPending,
		Purpose:        in.Purpose,
		RequestDate:    today(),
		AmountPaid:     decimal.Zero,
		MonthlyPayment: domainLoan.MonthlyPayment(in.Amount, in.DurationMonths),
		AssessmentID:   in.AssessmentID,
		StateUpdatedAt: time.Now().UTC(),
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}
	return toDTO(l), nil
}

// Approve moves a PENDING loan to APPROVED, stamping approval and due
// dates. Disbursement is a separate step.
func (u *Usecase) Approve(ctx context.Context, loanID, notes string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		now := today()
		due := now.AddDate(0, l.DurationMonths, 0)
		l.Status = domainLoan.StatusApproved
		l.ApprovalDate = &now
		l.DueDate = &due
		l.AdminNotes = notes
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Reject moves a PENDING loan to REJECTED. Notes explain the decision to
// the farmer.
func (u *Usecase) Reject(ctx context.Context, loanID, notes string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusPending {
			return domainLoan.ErrInvalidTransition
		}
		l.Status = domainLoan.StatusRejected
		l.AdminNotes = notes
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Disburse moves an APPROVED loan to ACTIVE and credits the principal to
// the farmer's wallet in the same transaction.
func (u *Usecase) Disburse(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.Status != domainLoan.StatusApproved {
			return domainLoan.ErrInvalidTransition
		}
		l.Status = domainLoan.StatusActive
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		w, err := r.Wallets.GetByUserIDForUpdate(ctx, l.FarmerID)
		if err != nil {
			return domainWallet.ErrNotFound
		}
		if err := w.Credit(l.Principal); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		ledger := &domainWallet.Transaction{
			TxID:        id.NewID32(),
			WalletID:    w.ID,
			Type:        domainWallet.TxLoanDisbursement,
			Description: fmt.Sprintf("Disbursement of loan %s", l.LoanID),
			Amount:      l.Principal,
		}
		if err := r.Wallets.AppendTransaction(ctx, ledger); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

type MakePaymentInput struct {
	FarmerID string          `json:"farmer_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// MakePayment debits the farmer's wallet, appends a payment record and
// bumps the running total. The loan completes once payments cover
// principal plus interest.
func (u *Usecase) MakePayment(ctx context.Context, loanID string, in MakePaymentInput) (*LoanDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, domainWallet.ErrInvalidAmount
	}
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domainLoan.Loan) error {
		if l.FarmerID != in.FarmerID {
			return domainLoan.ErrNotFound
		}
		if !l.Repayable() {
			return domainLoan.ErrInvalidTransition
		}

		w, err := r.Wallets.GetByUserIDForUpdate(ctx, l.FarmerID)
		if err != nil {
			return domainWallet.ErrNotFound
		}
		if err := w.Debit(in.Amount); err != nil {
			return err
		}
		if err := r.Wallets.Save(ctx, w); err != nil {
			return err
		}
		ledger := &domainWallet.Transaction{
			TxID:        id.NewID32(),
			WalletID:    w.ID,
			Type:        domainWallet.TxLoanRepayment,
			Description: fmt.Sprintf("Repayment on loan %s", l.LoanID),
			Amount:      in.Amount.Neg(),
		}
		if err := r.Wallets.AppendTransaction(ctx, ledger); err != nil {
			return err
		}

		p := &domainLoan.Payment{
			LoanID:      l.ID,
			PaymentDate: today(),
			Amount:      in.Amount,
			Status:      domainLoan.PaymentPaid,
		}
		if err := r.Loans.AppendPayment(ctx, p); err != nil {
			return err
		}
		l.Payments = append(l.Payments, *p)

		l.AmountPaid = l.AmountPaid.Add(in.Amount)
		if l.Settled() {
			l.Status = domainLoan.StatusCompleted
			l.StateUpdatedAt = time.Now().UTC()
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, domainLoan.ErrNotFound
	}
	return toDTO(l), nil
}

func (u *Usecase) FarmerLoans(ctx context.Context, farmerID string) ([]LoanDTO, error) {
	list, err := u.loans.ListByFarmerID(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(list))
	for i := range list {
		out = append(out, *toDTO(&list[i]))
	}
	return out, nil
}
