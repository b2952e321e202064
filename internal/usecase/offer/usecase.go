package offer

import (
	"context"
	"errors"
	"math"
	"time"

	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/id"

	"gorm.io/gorm"
)

// Usecase drives loan offer negotiation. Two entry paths produce an active
// loan: a shop appraises an item and offers (customer must accept), or a
// customer asks a shop directly (shop accepts or declines). Both converge on
// Loan.Activate plus the same collateral transition.
type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

type CreateOfferInput struct {
	ShopID         string  `json:"shop_id"`
	CollateralID   string  `json:"collateral_id"`
	AppraisedValue float64 `json:"appraised_value"`
	LTVPercent     float64 `json:"ltv_percent"`
	RatePercent    float64 `json:"rate_percent"`
	TermDays       int     `json:"term_days"`
}

type LoanDTO struct {
	LoanID               string     `json:"loan_id"`
	CollateralID         string     `json:"collateral_id"`
	ShopID               string     `json:"shop_id"`
	CustomerID           string     `json:"customer_id"`
	Principal            float64    `json:"principal"`
	MaxPrincipal         float64    `json:"max_principal"`
	RatePercent          float64    `json:"rate_percent"`
	TermDays             int        `json:"term_days"`
	OutstandingPrincipal float64    `json:"outstanding_principal"`
	Status               string     `json:"status"`
	StartAt              *time.Time `json:"start_at,omitempty"`
	DueAt                *time.Time `json:"due_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func toLoanDTO(l *loanDomain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:               l.LoanID,
		CollateralID:         l.CollateralID,
		ShopID:               l.ShopID,
		CustomerID:           l.CustomerID,
		Principal:            l.Principal,
		MaxPrincipal:         l.MaxPrincipal,
		RatePercent:          l.RatePercent,
		TermDays:             l.TermDays,
		OutstandingPrincipal: l.OutstandingPrincipal,
		Status:               string(l.Status),
		StartAt:              l.StartAt,
		DueAt:                l.DueAt,
		CreatedAt:            l.CreatedAt,
	}
}

// ensureNoOpenLoan enforces the at-most-one open loan per collateral rule.
func ensureNoOpenLoan(ctx context.Context, r uow.Repos, collateralID string) error {
	_, err := r.Loans.GetOpenByCollateralID(ctx, collateralID)
	switch {
	case err == nil:
		return loanDomain.ErrOpenLoanExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		return err
	}
}

// CreateOffer is the shop-initiated path: appraise the item and propose a
// loan of floor(appraisedValue * ltv/100), capped for top-ups at the
// appraised value. The loan stays pending_offer until the owner accepts.
func (u *Usecase) CreateOffer(ctx context.Context, in CreateOfferInput) (*LoanDTO, error) {
	if in.AppraisedValue <= 0 || in.LTVPercent <= 0 || in.LTVPercent > 100 ||
		in.RatePercent <= 0 || in.TermDays <= 0 {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Collaterals.GetByCollateralIDForUpdate(ctx, in.CollateralID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return collateralDomain.ErrNotFound
			}
			return err
		}
		if err := ensureNoOpenLoan(ctx, r, c.CollateralID); err != nil {
			return err
		}

		now := u.now()
		principal := math.Floor(in.AppraisedValue * in.LTVPercent / 100)
		l := &loanDomain.Loan{
			LoanID:               id.NewID32(),
			CollateralID:         c.CollateralID,
			ShopID:               in.ShopID,
			CustomerID:           c.OwnerID,
			Principal:            principal,
			MaxPrincipal:         in.AppraisedValue,
			RatePercent:          in.RatePercent,
			TermDays:             in.TermDays,
			OutstandingPrincipal: principal,
			Status:               loanDomain.StatusPendingOffer,
			StatusUpdatedAt:      now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		if err := c.Transition(collateralDomain.StatusAppraised, now); err != nil {
			return err
		}
		c.AppraisedValue = &in.AppraisedValue
		c.LoanID = &l.LoanID
		if err := r.Collaterals.Save(ctx, c); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AcceptOffer is the customer side of the shop-initiated path: only the
// collateral owner may accept, and acceptance is what disburses the
// principal and starts the clock.
func (u *Usecase) AcceptOffer(ctx context.Context, customerID, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusPendingOffer {
			return loanDomain.ErrInvalidTransition
		}
		if l.CustomerID != customerID {
			return collateralDomain.ErrNotOwner
		}

		c, err := r.Collaterals.GetByCollateralIDForUpdate(ctx, l.CollateralID)
		if err != nil {
			return err
		}

		now := u.now()
		l.Activate(now)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		if err := c.Transition(collateralDomain.StatusPledged, now); err != nil {
			return err
		}
		if err := r.Collaterals.Save(ctx, c); err != nil {
			return err
		}

		dto = toLoanDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}
