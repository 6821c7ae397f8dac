package http

import (
	"net/http"

	uc "agrichain-backend/internal/usecase/wallet"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type WalletHandler struct{ uc *uc.Usecase }

func NewWalletHandler(u *uc.Usecase) *WalletHandler { return &WalletHandler{uc: u} }

type walletAmountReq struct {
	Amount      float64 `json:"amount" validate:"required,gt=0,dec2"`
	Description string  `json:"description"`
}

func (h *WalletHandler) Deposit(c echo.Context) error {
	var req walletAmountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Deposit(c.Request().Context(), c.Param("user_id"), decimal.NewFromFloat(req.Amount))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Debit(c echo.Context) error {
	var req walletAmountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Debit(c.Request().Context(), c.Param("user_id"), decimal.NewFromFloat(req.Amount), req.Description)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Balance(c echo.Context) error {
	dto, err := h.uc.Balance(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *WalletHandler) Transactions(c echo.Context) error {
	list, err := h.uc.Transactions(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
