package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domainLoan "agrichain-backend/internal/domain/loan"
	"agrichain-backend/internal/domain/uow"
	domainUser "agrichain-backend/internal/domain/user"
	"agrichain-backend/internal/testutil/loanmock"
	"agrichain-backend/internal/testutil/uowmock"
	"agrichain-backend/internal/testutil/usermock"
	uc "agrichain-backend/internal/usecase/loan"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var testLoanFarmerID = strings.Repeat("d", 32)

// newLoanHandler serves one farmer with the given credit score; the loans
// map backs every repo lookup.
func newLoanHandler(creditScore int, loans map[string]*domainLoan.Loan) *LoanHandler {
	users := &usermock.Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*domainUser.User, error) {
			if userID != testLoanFarmerID {
				return nil, gorm.ErrRecordNotFound
			}
			return &domainUser.User{UserID: testLoanFarmerID, Role: domainUser.RoleFarmer, CreditScore: creditScore}, nil
		},
	}
	repo := &loanmock.Repo{
		CreateFn: func(_ context.Context, l *domainLoan.Loan) error {
			loans[l.LoanID] = l
			return nil
		},
		GetByLoanIDFn: func(_ context.Context, loanID string) (*domainLoan.Loan, error) {
			l, ok := loans[loanID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
		GetByLoanIDForUpdateFn: func(_ context.Context, loanID string) (*domainLoan.Loan, error) {
			l, ok := loans[loanID]
			if !ok {
				return nil, gorm.ErrRecordNotFound
			}
			return l, nil
		},
		GetPendingLoanByFarmerIDFn: func(_ context.Context, farmerID string) (*domainLoan.Loan, error) {
			for _, l := range loans {
				if l.FarmerID == farmerID && l.Status == domainLoan.StatusPending {
					return l, nil
				}
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Loans: repo, Users: users})
	return NewLoanHandler(uc.NewUsecase(repo, users, tx))
}

func TestApplyForLoan_Success(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(720, map[string]*domainLoan.Loan{})

	rec, c := postJSON(e, "/loans", map[string]any{
		"farmer_id":       testLoanFarmerID,
		"amount":          2000,
		"duration_months": 6,
		"purpose":         "Drip irrigation",
	})

	if err := h.ApplyForLoan(c); err != nil {
		t.Fatalf("ApplyForLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domainLoan.StatusPending) {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
	if !got.InterestRate.Equal(decimal.NewFromInt(10)) {
		t.Errorf("rate = %s, want 10", got.InterestRate)
	}
	if !got.MonthlyPayment.Equal(decimal.RequireFromString("366.67")) {
		t.Errorf("monthly payment = %s, want 366.67", got.MonthlyPayment)
	}
}

func TestApplyForLoan_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(720, map[string]*domainLoan.Loan{})

	rec, c := postJSON(e, "/loans", map[string]any{
		"farmer_id": testLoanFarmerID,
		"amount":    2000,
		// duration_months missing, purpose missing
	})

	if err := h.ApplyForLoan(c); err != nil {
		t.Fatalf("ApplyForLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestApplyForLoan_TierCeiling(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(650, map[string]*domainLoan.Loan{})

	// tier for score 650 caps at 2000
	rec, c := postJSON(e, "/loans", map[string]any{
		"farmer_id":       testLoanFarmerID,
		"amount":          2500,
		"duration_months": 6,
		"purpose":         "Tractor repair",
	})

	if err := h.ApplyForLoan(c); err != nil {
		t.Fatalf("ApplyForLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestApplyForLoan_PendingConflict(t *testing.T) {
	e := newEchoWithValidator()
	loans := map[string]*domainLoan.Loan{
		"existing": {LoanID: "existing", FarmerID: testLoanFarmerID, Status: domainLoan.StatusPending},
	}
	h := newLoanHandler(720, loans)

	rec, c := postJSON(e, "/loans", map[string]any{
		"farmer_id":       testLoanFarmerID,
		"amount":          1000,
		"duration_months": 6,
		"purpose":         "Seeds",
	})

	if err := h.ApplyForLoan(c); err != nil {
		t.Fatalf("ApplyForLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestApproveLoan_TransitionsAndConflicts(t *testing.T) {
	e := newEchoWithValidator()
	loanID := strings.Repeat("7", 32)
	loans := map[string]*domainLoan.Loan{
		loanID: {
			LoanID:         loanID,
			FarmerID:       testLoanFarmerID,
			Principal:      decimal.NewFromInt(1000),
			InterestRate:   decimal.NewFromInt(10),
			DurationMonths: 6,
			Status:         domainLoan.StatusPending,
		},
	}
	h := newLoanHandler(720, loans)

	rec, c := postJSON(e, "/loans/"+loanID+"/approve", map[string]any{"notes": "ok"})
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var got uc.LoanDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got.Status != string(domainLoan.StatusApproved) || got.ApprovalDate == nil || got.DueDate == nil {
		t.Errorf("after approve: %+v", got)
	}

	// approving twice conflicts
	rec, c = postJSON(e, "/loans/"+loanID+"/approve", map[string]any{"notes": "again"})
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)
	if err := h.ApproveLoan(c); err != nil {
		t.Fatalf("ApproveLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestGetLoan_NotFound(t *testing.T) {
	e := newEchoWithValidator()
	h := newLoanHandler(720, map[string]*domainLoan.Loan{})

	req := httptest.NewRequest(stdhttp.MethodGet, "/loans/"+strings.Repeat("9", 32), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("loan_id")
	c.SetParamValues(strings.Repeat("9", 32))

	if err := h.GetLoan(c); err != nil {
		t.Fatalf("GetLoan error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestMakePayment_BeforeDisbursementConflicts(t *testing.T) {
	e := newEchoWithValidator()
	loanID := strings.Repeat("8", 32)
	loans := map[string]*domainLoan.Loan{
		loanID: {
			LoanID:       loanID,
			FarmerID:     testLoanFarmerID,
			Principal:    decimal.NewFromInt(1000),
			InterestRate: decimal.NewFromInt(10),
			Status:       domainLoan.StatusPending,
		},
	}
	h := newLoanHandler(720, loans)

	rec, c := postJSON(e, "/loans/"+loanID+"/payments", map[string]any{
		"farmer_id": testLoanFarmerID,
		"amount":    100,
	})
	c.SetParamNames("loan_id")
	c.SetParamValues(loanID)

	if err := h.MakePayment(c); err != nil {
		t.Fatalf("MakePayment error: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}
