package mysql

import (
	"context"
	"time"

	auctionDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"

	"gorm.io/gorm"
)

type AuctionRepository struct{ db *gorm.DB }

func NewAuctionRepository(db *gorm.DB) *AuctionRepository { return &AuctionRepository{db: db} }

func (r *AuctionRepository) Create(ctx context.Context, a *auctionDomain.Auction) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AuctionRepository) Save(ctx context.Context, a *auctionDomain.Auction) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AuctionRepository) GetByAuctionID(ctx context.Context, auctionID string) (*auctionDomain.Auction, error) {
	var out auctionDomain.Auction
	res := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).First(&out)
	return &out, res.Error
}

func (r *AuctionRepository) GetByAuctionIDForUpdate(ctx context.Context, auctionID string) (*auctionDomain.Auction, error) {
	var out auctionDomain.Auction
	res := forUpdate(r.db.WithContext(ctx)).Where("auction_id = ?", auctionID).First(&out)
	return &out, res.Error
}

func (r *AuctionRepository) GetOpenByCollateralID(ctx context.Context, collateralID string) (*auctionDomain.Auction, error) {
	var out auctionDomain.Auction
	res := r.db.WithContext(ctx).
		Where("collateral_id = ? AND status <> ?", collateralID, auctionDomain.StatusSettled).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *AuctionRepository) ListDue(ctx context.Context, now time.Time) ([]auctionDomain.Auction, error) {
	var out []auctionDomain.Auction
	res := r.db.WithContext(ctx).
		Where("(status = ? AND start_at <= ?) OR (status = ? AND end_at <= ?)",
			auctionDomain.StatusScheduled, now, auctionDomain.StatusLive, now).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// RaiseHighestBid is the optimistic commit-time check for bid placement: the
// UPDATE only lands while the stored highest bid is still below amount.
func (r *AuctionRepository) RaiseHighestBid(ctx context.Context, auctionID string, amount float64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&auctionDomain.Auction{}).
		Where("auction_id = ? AND highest_bid < ?", auctionID, amount).
		Update("highest_bid", amount)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

type BidRepository struct{ db *gorm.DB }

func NewBidRepository(db *gorm.DB) *BidRepository { return &BidRepository{db: db} }

func (r *BidRepository) Create(ctx context.Context, b *auctionDomain.Bid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BidRepository) HighestByAuctionID(ctx context.Context, auctionID string) (*auctionDomain.Bid, error) {
	var out auctionDomain.Bid
	res := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("amount DESC, id ASC").
		First(&out)
	return &out, res.Error
}

func (r *BidRepository) ListByAuctionID(ctx context.Context, auctionID string) ([]auctionDomain.Bid, error) {
	var out []auctionDomain.Bid
	res := r.db.WithContext(ctx).
		Where("auction_id = ?", auctionID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
