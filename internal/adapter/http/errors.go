package http

import (
	"errors"
	"net/http"

	auctionDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	paymentDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// statusFor maps domain errors onto HTTP codes: validation 400, missing
// records 404, state conflicts and the cap 409, exhausted write-conflict
// retries 503 (transient, client may retry).
func statusFor(err error) int {
	switch {
	case errors.Is(err, loanDomain.ErrInvalidAmount),
		errors.Is(err, paymentDomain.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, collateralDomain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, loanDomain.ErrNotFound),
		errors.Is(err, loanDomain.ErrRequestNotFound),
		errors.Is(err, collateralDomain.ErrNotFound),
		errors.Is(err, paymentDomain.ErrNotFound),
		errors.Is(err, auctionDomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, loanDomain.ErrCapExceeded),
		errors.Is(err, loanDomain.ErrNotActive),
		errors.Is(err, loanDomain.ErrInvalidTransition),
		errors.Is(err, loanDomain.ErrNothingToSettle),
		errors.Is(err, loanDomain.ErrOpenLoanExists),
		errors.Is(err, loanDomain.ErrRequestProcessed),
		errors.Is(err, collateralDomain.ErrInvalidTransition),
		errors.Is(err, paymentDomain.ErrAlreadyProcessed),
		errors.Is(err, auctionDomain.ErrNotLive),
		errors.Is(err, auctionDomain.ErrBidTooLow),
		errors.Is(err, auctionDomain.ErrInvalidTransition),
		errors.Is(err, auctionDomain.ErrOpenAuctionExists),
		errors.Is(err, auctionDomain.ErrNoWinner):
		return http.StatusConflict
	case errors.Is(err, uow.ErrWriteConflict):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
}
