package http

import (
	"errors"
	"net/http"

	domainAssessment "agrichain-backend/internal/domain/assessment"
	domainListing "agrichain-backend/internal/domain/listing"
	domainLoan "agrichain-backend/internal/domain/loan"
	domainOrder "agrichain-backend/internal/domain/order"
	domainUser "agrichain-backend/internal/domain/user"
	domainWallet "agrichain-backend/internal/domain/wallet"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps domain sentinels onto HTTP status codes. Unknown
// errors fall through as 400 so callers see the reason without leaking a
// 500 for plain precondition failures.
func writeDomainError(c echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, domainOrder.ErrNotFound),
		errors.Is(err, domainLoan.ErrNotFound),
		errors.Is(err, domainListing.ErrNotFound),
		errors.Is(err, domainUser.ErrNotFound),
		errors.Is(err, domainWallet.ErrNotFound),
		errors.Is(err, domainAssessment.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domainOrder.ErrInvalidTransition),
		errors.Is(err, domainLoan.ErrInvalidTransition),
		errors.Is(err, domainLoan.ErrPendingExists),
		errors.Is(err, domainOrder.ErrListingUnavailable):
		code = http.StatusConflict
	case errors.Is(err, domainWallet.ErrInsufficientFunds):
		code = http.StatusPaymentRequired
	case errors.Is(err, domainOrder.ErrNotOrderFarmer),
		errors.Is(err, domainOrder.ErrNotOrderBuyer):
		code = http.StatusForbidden
	case errors.Is(err, domainLoan.ErrAmountExceedsTier),
		errors.Is(err, domainLoan.ErrAmountBelowFloor):
		code = http.StatusUnprocessableEntity
	default:
		code = http.StatusBadRequest
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}
