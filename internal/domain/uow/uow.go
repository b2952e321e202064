package uow

import (
	"context"
	"errors"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
)

// ErrWriteConflict marks a transaction that lost a concurrent-write race
// after the bounded retries were exhausted. Callers may retry the whole
// operation; every other error is terminal for the request.
var ErrWriteConflict = errors.New("write conflict, transaction retries exhausted")

type Repos struct {
	Collaterals  collateral.Repository
	Loans        loan.Repository
	LoanRequests loan.RequestRepository
	Payments     payment.Repository
	Auctions     auction.Repository
	Bids         auction.BidRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// convenience: lock the auction row first, then pass it in
	WithinAuctionTx(ctx context.Context, auctionID string, fn func(r Repos, a *auction.Auction) error) error
}
