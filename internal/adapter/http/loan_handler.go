package http

import (
	"net/http"

	uc "agrichain-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *uc.Usecase }

func NewLoanHandler(u *uc.Usecase) *LoanHandler { return &LoanHandler{uc: u} }

type applyLoanReq struct {
	FarmerID       string  `json:"farmer_id"       validate:"required,hex32"`
	Amount         float64 `json:"amount"          validate:"required,gt=0,dec2"`
	DurationMonths int     `json:"duration_months" validate:"required,min=1,max=36"`
	Purpose        string  `json:"purpose"         validate:"required"`
	AssessmentID   string  `json:"assessment_id"   validate:"omitempty,hex32"`
}

func (h *LoanHandler) ApplyForLoan(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Apply(c.Request().Context(), uc.ApplyInput{
		FarmerID:       req.FarmerID,
		Amount:         decimal.NewFromFloat(req.Amount),
		DurationMonths: req.DurationMonths,
		Purpose:        req.Purpose,
		AssessmentID:   req.AssessmentID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type loanDecisionReq struct {
	Notes string `json:"notes"`
}

func (h *LoanHandler) ApproveLoan(c echo.Context) error {
	var req loanDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("loan_id"), req.Notes)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RejectLoan(c echo.Context) error {
	var req loanDecisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("loan_id"), req.Notes)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) DisburseLoan(c echo.Context) error {
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type makePaymentReq struct {
	FarmerID string  `json:"farmer_id" validate:"required,hex32"`
	Amount   float64 `json:"amount"    validate:"required,gt=0,dec2"`
}

func (h *LoanHandler) MakePayment(c echo.Context) error {
	var req makePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.MakePayment(c.Request().Context(), c.Param("loan_id"), uc.MakePaymentInput{
		FarmerID: req.FarmerID,
		Amount:   decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) FarmerLoans(c echo.Context) error {
	list, err := h.uc.FarmerLoans(c.Request().Context(), c.Param("farmer_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
