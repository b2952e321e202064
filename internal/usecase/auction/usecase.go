package auction

import (
	"context"
	"errors"
	"time"

	auctionDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	paymentDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/accrual"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/id"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/logger"

	"gorm.io/gorm"
)

// Usecase runs the bidding window for defaulted collateral and reconciles
// the sale against the loan the item secured.
type Usecase struct {
	uow     uow.UnitOfWork
	minNext auctionDomain.IncrementPolicy
	now     func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, policy auctionDomain.IncrementPolicy) *Usecase {
	if policy == nil {
		policy = auctionDomain.PercentIncrement(1)
	}
	return &Usecase{
		uow:     tx,
		minNext: policy,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

type ScheduleInput struct {
	ShopID       string    `json:"shop_id"`
	CollateralID string    `json:"collateral_id"`
	StartPrice   float64   `json:"start_price"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
}

type AuctionDTO struct {
	AuctionID    string    `json:"auction_id"`
	CollateralID string    `json:"collateral_id"`
	LoanID       string    `json:"loan_id"`
	Title        string    `json:"title"`
	StartPrice   float64   `json:"start_price"`
	HighestBid   float64   `json:"highest_bid"`
	WinnerID     *string   `json:"winner_id,omitempty"`
	StartAt      time.Time `json:"start_at"`
	EndAt        time.Time `json:"end_at"`
	Status       string    `json:"status"`
}

func toDTO(a *auctionDomain.Auction) *AuctionDTO {
	return &AuctionDTO{
		AuctionID:    a.AuctionID,
		CollateralID: a.CollateralID,
		LoanID:       a.LoanID,
		Title:        a.Title,
		StartPrice:   a.StartPrice,
		HighestBid:   a.HighestBid,
		WinnerID:     a.WinnerID,
		StartAt:      a.StartAt,
		EndAt:        a.EndAt,
		Status:       string(a.Status),
	}
}

// Schedule opens a time-boxed auction for a defaulted collateral item.
func (u *Usecase) Schedule(ctx context.Context, in ScheduleInput) (*AuctionDTO, error) {
	if in.StartPrice <= 0 || !in.EndAt.After(in.StartAt) {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *AuctionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Collaterals.GetByCollateralIDForUpdate(ctx, in.CollateralID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return collateralDomain.ErrNotFound
			}
			return err
		}
		if c.Status != collateralDomain.StatusDefaulted || c.LoanID == nil {
			return auctionDomain.ErrInvalidTransition
		}

		_, err = r.Auctions.GetOpenByCollateralID(ctx, c.CollateralID)
		switch {
		case err == nil:
			return auctionDomain.ErrOpenAuctionExists
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a := &auctionDomain.Auction{
			AuctionID:       id.NewID32(),
			CollateralID:    c.CollateralID,
			LoanID:          *c.LoanID,
			Title:           c.Title,
			StartPrice:      in.StartPrice,
			StartAt:         in.StartAt.UTC(),
			EndAt:           in.EndAt.UTC(),
			Status:          auctionDomain.StatusScheduled,
			StatusUpdatedAt: u.now(),
		}
		if err := r.Auctions.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

type BidDTO struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PlaceBid accepts a bid when the auction is live and the amount clears the
// increment policy. The cached highest bid is raised with a conditional
// update, so a lower bid racing a higher concurrent one loses at commit time
// instead of overwriting it.
func (u *Usecase) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (*BidDTO, error) {
	if amount <= 0 {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *BidDTO
	err := u.uow.WithinAuctionTx(ctx, auctionID, func(r uow.Repos, a *auctionDomain.Auction) error {
		if !a.IsLive(u.now()) {
			return auctionDomain.ErrNotLive
		}
		if min := u.minNext(a.StartPrice, a.HighestBid); amount < min {
			return auctionDomain.ErrBidTooLow
		}

		raised, err := r.Auctions.RaiseHighestBid(ctx, a.AuctionID, amount)
		if err != nil {
			return err
		}
		if !raised {
			// a concurrent bid got there first with at least this amount
			return auctionDomain.ErrBidTooLow
		}

		b := &auctionDomain.Bid{
			BidID:     id.NewID32(),
			AuctionID: a.AuctionID,
			BidderID:  bidderID,
			Amount:    amount,
		}
		if err := r.Bids.Create(ctx, b); err != nil {
			return err
		}
		dto = &BidDTO{
			BidID:     b.BidID,
			AuctionID: b.AuctionID,
			BidderID:  b.BidderID,
			Amount:    b.Amount,
			CreatedAt: b.CreatedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auctionDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, auctionID string) (*AuctionDTO, error) {
	var dto *AuctionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Auctions.GetByAuctionID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionDomain.ErrNotFound
			}
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Sweep reconciles auction statuses with the wall clock: scheduled auctions
// past StartAt go live, live auctions past EndAt close. Closing resolves the
// winner from the bid log. Each auction is re-checked under its row lock, so
// re-running the sweep is a no-op.
func (u *Usecase) Sweep(ctx context.Context, now time.Time) error {
	var due []auctionDomain.Auction
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		due, err = r.Auctions.ListDue(ctx, now)
		return err
	})
	if err != nil {
		return err
	}

	for i := range due {
		auctionID := due[i].AuctionID
		err := u.uow.WithinAuctionTx(ctx, auctionID, func(r uow.Repos, a *auctionDomain.Auction) error {
			switch {
			case a.Status == auctionDomain.StatusScheduled && !now.Before(a.StartAt):
				a.Status = auctionDomain.StatusLive
			case a.Status == auctionDomain.StatusLive && !now.Before(a.EndAt):
				if a.HighestBid > 0 {
					top, err := r.Bids.HighestByAuctionID(ctx, a.AuctionID)
					if err != nil {
						return err
					}
					a.WinnerID = &top.BidderID
					a.Status = auctionDomain.StatusSettlementPending
				} else {
					a.Status = auctionDomain.StatusEnded
				}
			default:
				// another sweep already moved it
				return nil
			}
			a.StatusUpdatedAt = now
			return r.Auctions.Save(ctx, a)
		})
		if err != nil {
			logger.Error("auction sweep failed", map[string]any{
				"auction_id": auctionID,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

// Settle reconciles the sale proceeds against the defaulted loan: the
// winning amount is recorded as a settlement payment and consumed by the
// balance fields in order (principal, then interest, then fees).
func (u *Usecase) Settle(ctx context.Context, auctionID string) (*AuctionDTO, error) {
	var dto *AuctionDTO
	err := u.uow.WithinAuctionTx(ctx, auctionID, func(r uow.Repos, a *auctionDomain.Auction) error {
		if a.Status != auctionDomain.StatusSettlementPending {
			return auctionDomain.ErrInvalidTransition
		}
		if a.WinnerID == nil || a.HighestBid <= 0 {
			return auctionDomain.ErrNoWinner
		}

		l, err := r.Loans.GetByLoanIDForUpdate(ctx, a.LoanID)
		if err != nil {
			return err
		}

		p := &paymentDomain.Payment{
			PaymentID:  id.NewID32(),
			LoanID:     l.LoanID,
			Amount:     a.HighestBid,
			Kind:       paymentDomain.KindSettlement,
			Status:     paymentDomain.StatusApproved,
			RecordedBy: *a.WinnerID,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		// proceeds waterfall, each leg floored at zero
		remaining := a.HighestBid
		apply := func(balance float64) float64 {
			applied := balance
			if remaining < applied {
				applied = remaining
			}
			remaining = accrual.Sub(remaining, applied)
			return accrual.Sub(balance, applied)
		}
		l.OutstandingPrincipal = apply(l.OutstandingPrincipal)
		l.AccruedInterest = apply(l.AccruedInterest)
		l.LateFees = apply(l.LateFees)
		l.StatusUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		a.Status = auctionDomain.StatusSettled
		a.StatusUpdatedAt = u.now()
		if err := r.Auctions.Save(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auctionDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}
