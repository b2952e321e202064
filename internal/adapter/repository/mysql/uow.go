package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	maxTxAttempts = 3
	retryBackoff  = 25 * time.Millisecond
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Collaterals:  &CollateralRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		LoanRequests: &LoanRequestRepository{db: tx},
		Payments:     &PaymentRepository{db: tx},
		Auctions:     &AuctionRepository{db: tx},
		Bids:         &BidRepository{db: tx},
	}
}

// isLockConflict matches MySQL deadlock (1213) and lock-wait-timeout (1205),
// the only failures worth an automatic retry.
func isLockConflict(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}

// transact runs fn in a transaction with bounded retries on lock conflicts.
// Exhausted retries surface as uow.ErrWriteConflict.
func (u *GormUoW) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = u.db.WithContext(ctx).Transaction(fn)
		if !isLockConflict(err) {
			return err
		}
		time.Sleep(time.Duration(attempt) * retryBackoff)
	}
	return fmt.Errorf("%w: %v", uow.ErrWriteConflict, err)
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.transact(ctx, func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.transact(ctx, func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinAuctionTx(ctx context.Context, auctionID string, fn func(r uow.Repos, a *auction.Auction) error) error {
	return u.transact(ctx, func(tx *gorm.DB) error {
		r := reposFor(tx)
		a, err := r.Auctions.GetByAuctionIDForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
