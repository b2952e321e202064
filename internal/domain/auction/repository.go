package auction

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Auction) error
	GetByAuctionID(ctx context.Context, auctionID string) (*Auction, error)
	GetByAuctionIDForUpdate(ctx context.Context, auctionID string) (*Auction, error)
	// GetOpenByCollateralID returns the not-yet-settled auction for the
	// collateral, if any.
	GetOpenByCollateralID(ctx context.Context, collateralID string) (*Auction, error)
	// ListDue returns auctions whose status lags the wall clock: scheduled
	// past StartAt, or live past EndAt. Input for the boundary sweep.
	ListDue(ctx context.Context, now time.Time) ([]Auction, error)
	// RaiseHighestBid conditionally bumps the cached highest bid. It reports
	// false, without error, when the stored value is already >= amount — the
	// optimistic check that keeps a late lower bid from overwriting a
	// concurrent higher one.
	RaiseHighestBid(ctx context.Context, auctionID string, amount float64) (bool, error)
	Save(ctx context.Context, a *Auction) error
}

type BidRepository interface {
	Create(ctx context.Context, b *Bid) error
	HighestByAuctionID(ctx context.Context, auctionID string) (*Bid, error)
	ListByAuctionID(ctx context.Context, auctionID string) ([]Bid, error)
}
