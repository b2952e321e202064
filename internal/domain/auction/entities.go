package auction

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("auction not found")
	ErrNotLive           = errors.New("auction is not open for bidding")
	ErrBidTooLow         = errors.New("bid below minimum next bid")
	ErrInvalidTransition = errors.New("invalid auction status transition")
	ErrOpenAuctionExists = errors.New("collateral already has an open auction")
	ErrNoWinner          = errors.New("auction ended without a winner")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	// StatusEnded: bidding window closed with no accepted bid.
	StatusEnded Status = "ended"
	// StatusSettlementPending: window closed with a winner, proceeds not yet
	// reconciled against the defaulted loan.
	StatusSettlementPending Status = "settlement_pending"
	StatusSettled           Status = "settled"
)

type Auction struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	AuctionID    string `gorm:"size:32;uniqueIndex:ux_auctions_auction_id" json:"auction_id"`
	CollateralID string `gorm:"size:32;index:idx_auctions_collateral" json:"collateral_id"`
	// LoanID is the defaulted loan whose proceeds this auction recovers.
	LoanID     string  `gorm:"size:32;index:idx_auctions_loan" json:"loan_id"`
	Title      string  `gorm:"size:255" json:"title"`
	StartPrice float64 `gorm:"type:decimal(18,2)" json:"start_price"`
	// HighestBid is a cached projection of the append-only bid log, updated
	// transactionally with each accepted bid. Zero means no accepted bid.
	HighestBid      float64   `gorm:"type:decimal(18,2)" json:"highest_bid"`
	WinnerID        *string   `gorm:"size:32" json:"winner_id,omitempty"`
	StartAt         time.Time `json:"start_at"`
	EndAt           time.Time `json:"end_at"`
	Status          Status    `gorm:"size:24;default:'scheduled'" json:"status"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Auction) TableName() string { return "auctions" }

// IsLive reports whether the auction accepts bids at the given instant. The
// status flip at each boundary is performed by the sweep; readers must still
// check the wall clock because the sweep may lag the boundary.
func (a *Auction) IsLive(now time.Time) bool {
	return a.Status == StatusLive &&
		!now.Before(a.StartAt) && now.Before(a.EndAt)
}

// Open reports whether the auction still occupies its collateral.
func (a *Auction) Open() bool {
	return a.Status != StatusSettled
}

// Bid is an append-only record; the auction's HighestBid is derived from
// these rows, never edited independently.
type Bid struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	BidID     string    `gorm:"size:32;uniqueIndex:ux_bids_bid_id" json:"bid_id"`
	AuctionID string    `gorm:"size:32;index:idx_bids_auction" json:"auction_id"`
	BidderID  string    `gorm:"size:32;index:idx_bids_bidder" json:"bidder_id"`
	Amount    float64   `gorm:"type:decimal(18,2)" json:"amount"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Bid) TableName() string { return "bids" }
