package uowmock

import (
	"context"
	"errors"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn    func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinAuctionTxFn func(ctx context.Context, auctionID string, fn func(r uow.Repos, a *auction.Auction) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough returns a mock whose WithinTx simply invokes the closure on
// the given repos, with no transaction semantics. WithinLoanTx and
// WithinAuctionTx resolve the row through the repos' ForUpdate getters
// first, like the real unit of work.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(r, l)
		},
		WithinAuctionTxFn: func(ctx context.Context, auctionID string, fn func(uow.Repos, *auction.Auction) error) error {
			a, err := r.Auctions.GetByAuctionIDForUpdate(ctx, auctionID)
			if err != nil {
				return err
			}
			return fn(r, a)
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinAuctionTx(ctx context.Context, auctionID string, fn func(r uow.Repos, a *auction.Auction) error) error {
	if m.WithinAuctionTxFn != nil {
		return m.WithinAuctionTxFn(ctx, auctionID, fn)
	}
	return errUnimplemented
}
