// Package repomock provides function-backed mocks for every repository
// interface. Fill in the function fields a test needs; unfilled ones return
// errUnimplemented.
package repomock

import (
	"context"
	"errors"
	"time"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
)

var errUnimplemented = errors.New("repomock: method not implemented")

// Ensure compile-time compliance
var (
	_ collateral.Repository  = (*CollateralRepo)(nil)
	_ loan.Repository        = (*LoanRepo)(nil)
	_ loan.RequestRepository = (*LoanRequestRepo)(nil)
	_ payment.Repository     = (*PaymentRepo)(nil)
	_ auction.Repository     = (*AuctionRepo)(nil)
	_ auction.BidRepository  = (*BidRepo)(nil)
)

type CollateralRepo struct {
	CreateFn                     func(ctx context.Context, c *collateral.Collateral) error
	GetByCollateralIDFn          func(ctx context.Context, id string) (*collateral.Collateral, error)
	GetByCollateralIDForUpdateFn func(ctx context.Context, id string) (*collateral.Collateral, error)
	SaveFn                       func(ctx context.Context, c *collateral.Collateral) error
}

func (m *CollateralRepo) Create(ctx context.Context, c *collateral.Collateral) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return errUnimplemented
}
func (m *CollateralRepo) GetByCollateralID(ctx context.Context, id string) (*collateral.Collateral, error) {
	if m.GetByCollateralIDFn != nil {
		return m.GetByCollateralIDFn(ctx, id)
	}
	return nil, errUnimplemented
}
func (m *CollateralRepo) GetByCollateralIDForUpdate(ctx context.Context, id string) (*collateral.Collateral, error) {
	if m.GetByCollateralIDForUpdateFn != nil {
		return m.GetByCollateralIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}
func (m *CollateralRepo) Save(ctx context.Context, c *collateral.Collateral) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return errUnimplemented
}

type LoanRepo struct {
	CreateFn                func(ctx context.Context, l *loan.Loan) error
	GetByLoanIDFn           func(ctx context.Context, loanID string) (*loan.Loan, error)
	GetByLoanIDForUpdateFn  func(ctx context.Context, loanID string) (*loan.Loan, error)
	GetOpenByCollateralIDFn func(ctx context.Context, collateralID string) (*loan.Loan, error)
	SaveFn                  func(ctx context.Context, l *loan.Loan) error
}

func (m *LoanRepo) Create(ctx context.Context, l *loan.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return errUnimplemented
}
func (m *LoanRepo) GetByLoanID(ctx context.Context, loanID string) (*loan.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}
func (m *LoanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, errUnimplemented
}
func (m *LoanRepo) GetOpenByCollateralID(ctx context.Context, collateralID string) (*loan.Loan, error) {
	if m.GetOpenByCollateralIDFn != nil {
		return m.GetOpenByCollateralIDFn(ctx, collateralID)
	}
	return nil, errUnimplemented
}
func (m *LoanRepo) Save(ctx context.Context, l *loan.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return errUnimplemented
}

type LoanRequestRepo struct {
	CreateFn                  func(ctx context.Context, r *loan.Request) error
	GetByRequestIDFn          func(ctx context.Context, requestID string) (*loan.Request, error)
	GetByRequestIDForUpdateFn func(ctx context.Context, requestID string) (*loan.Request, error)
	SaveFn                    func(ctx context.Context, r *loan.Request) error
}

func (m *LoanRequestRepo) Create(ctx context.Context, r *loan.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return errUnimplemented
}
func (m *LoanRequestRepo) GetByRequestID(ctx context.Context, requestID string) (*loan.Request, error) {
	if m.GetByRequestIDFn != nil {
		return m.GetByRequestIDFn(ctx, requestID)
	}
	return nil, errUnimplemented
}
func (m *LoanRequestRepo) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*loan.Request, error) {
	if m.GetByRequestIDForUpdateFn != nil {
		return m.GetByRequestIDForUpdateFn(ctx, requestID)
	}
	return nil, errUnimplemented
}
func (m *LoanRequestRepo) Save(ctx context.Context, r *loan.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return errUnimplemented
}

type PaymentRepo struct {
	CreateFn                  func(ctx context.Context, p *payment.Payment) error
	GetByPaymentIDFn          func(ctx context.Context, paymentID string) (*payment.Payment, error)
	GetByPaymentIDForUpdateFn func(ctx context.Context, paymentID string) (*payment.Payment, error)
	ListByLoanIDFn            func(ctx context.Context, loanID string) ([]payment.Payment, error)
	SaveFn                    func(ctx context.Context, p *payment.Payment) error
}

func (m *PaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return errUnimplemented
}
func (m *PaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*payment.Payment, error) {
	if m.GetByPaymentIDFn != nil {
		return m.GetByPaymentIDFn(ctx, paymentID)
	}
	return nil, errUnimplemented
}
func (m *PaymentRepo) GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*payment.Payment, error) {
	if m.GetByPaymentIDForUpdateFn != nil {
		return m.GetByPaymentIDForUpdateFn(ctx, paymentID)
	}
	return nil, errUnimplemented
}
func (m *PaymentRepo) ListByLoanID(ctx context.Context, loanID string) ([]payment.Payment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, errUnimplemented
}
func (m *PaymentRepo) Save(ctx context.Context, p *payment.Payment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return errUnimplemented
}

type AuctionRepo struct {
	CreateFn                  func(ctx context.Context, a *auction.Auction) error
	GetByAuctionIDFn          func(ctx context.Context, auctionID string) (*auction.Auction, error)
	GetByAuctionIDForUpdateFn func(ctx context.Context, auctionID string) (*auction.Auction, error)
	GetOpenByCollateralIDFn   func(ctx context.Context, collateralID string) (*auction.Auction, error)
	ListDueFn                 func(ctx context.Context, now time.Time) ([]auction.Auction, error)
	RaiseHighestBidFn         func(ctx context.Context, auctionID string, amount float64) (bool, error)
	SaveFn                    func(ctx context.Context, a *auction.Auction) error
}

func (m *AuctionRepo) Create(ctx context.Context, a *auction.Auction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return errUnimplemented
}
func (m *AuctionRepo) GetByAuctionID(ctx context.Context, auctionID string) (*auction.Auction, error) {
	if m.GetByAuctionIDFn != nil {
		return m.GetByAuctionIDFn(ctx, auctionID)
	}
	return nil, errUnimplemented
}
func (m *AuctionRepo) GetByAuctionIDForUpdate(ctx context.Context, auctionID string) (*auction.Auction, error) {
	if m.GetByAuctionIDForUpdateFn != nil {
		return m.GetByAuctionIDForUpdateFn(ctx, auctionID)
	}
	return nil, errUnimplemented
}
func (m *AuctionRepo) GetOpenByCollateralID(ctx context.Context, collateralID string) (*auction.Auction, error) {
	if m.GetOpenByCollateralIDFn != nil {
		return m.GetOpenByCollateralIDFn(ctx, collateralID)
	}
	return nil, errUnimplemented
}
func (m *AuctionRepo) ListDue(ctx context.Context, now time.Time) ([]auction.Auction, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, now)
	}
	return nil, errUnimplemented
}
func (m *AuctionRepo) RaiseHighestBid(ctx context.Context, auctionID string, amount float64) (bool, error) {
	if m.RaiseHighestBidFn != nil {
		return m.RaiseHighestBidFn(ctx, auctionID, amount)
	}
	return false, errUnimplemented
}
func (m *AuctionRepo) Save(ctx context.Context, a *auction.Auction) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return errUnimplemented
}

type BidRepo struct {
	CreateFn             func(ctx context.Context, b *auction.Bid) error
	HighestByAuctionIDFn func(ctx context.Context, auctionID string) (*auction.Bid, error)
	ListByAuctionIDFn    func(ctx context.Context, auctionID string) ([]auction.Bid, error)
}

func (m *BidRepo) Create(ctx context.Context, b *auction.Bid) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return errUnimplemented
}
func (m *BidRepo) HighestByAuctionID(ctx context.Context, auctionID string) (*auction.Bid, error) {
	if m.HighestByAuctionIDFn != nil {
		return m.HighestByAuctionIDFn(ctx, auctionID)
	}
	return nil, errUnimplemented
}
func (m *BidRepo) ListByAuctionID(ctx context.Context, auctionID string) ([]auction.Bid, error) {
	if m.ListByAuctionIDFn != nil {
		return m.ListByAuctionIDFn(ctx, auctionID)
	}
	return nil, errUnimplemented
}
