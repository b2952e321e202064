package offer

import (
	"context"
	"errors"
	"time"

	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/id"

	"gorm.io/gorm"
)

type SubmitRequestInput struct {
	CustomerID   string  `json:"customer_id"`
	CollateralID string  `json:"collateral_id"`
	ShopID       string  `json:"shop_id"`
	Amount       float64 `json:"amount"`
	TermDays     int     `json:"term_days"`
	RatePercent  float64 `json:"rate_percent"`
}

type RequestDTO struct {
	RequestID    string    `json:"request_id"`
	CollateralID string    `json:"collateral_id"`
	ShopID       string    `json:"shop_id"`
	CustomerID   string    `json:"customer_id"`
	Amount       float64   `json:"amount"`
	TermDays     int       `json:"term_days"`
	RatePercent  float64   `json:"rate_percent"`
	Status       string    `json:"status"`
	LoanID       *string   `json:"loan_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func toRequestDTO(req *loanDomain.Request) *RequestDTO {
	return &RequestDTO{
		RequestID:    req.RequestID,
		CollateralID: req.CollateralID,
		ShopID:       req.ShopID,
		CustomerID:   req.CustomerID,
		Amount:       req.Amount,
		TermDays:     req.TermDays,
		RatePercent:  req.RatePercent,
		Status:       string(req.Status),
		LoanID:       req.LoanID,
		CreatedAt:    req.CreatedAt,
	}
}

// SubmitRequest is the customer-initiated path: ask a chosen shop for a loan
// against owned collateral. No collateral transition happens until the shop
// accepts.
func (u *Usecase) SubmitRequest(ctx context.Context, in SubmitRequestInput) (*RequestDTO, error) {
	if in.Amount <= 0 || in.TermDays <= 0 || in.RatePercent <= 0 {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Collaterals.GetByCollateralID(ctx, in.CollateralID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return collateralDomain.ErrNotFound
			}
			return err
		}
		if c.OwnerID != in.CustomerID {
			return collateralDomain.ErrNotOwner
		}
		if err := ensureNoOpenLoan(ctx, r, c.CollateralID); err != nil {
			return err
		}

		req := &loanDomain.Request{
			RequestID:    id.NewID32(),
			CollateralID: in.CollateralID,
			ShopID:       in.ShopID,
			CustomerID:   in.CustomerID,
			Amount:       in.Amount,
			TermDays:     in.TermDays,
			RatePercent:  in.RatePercent,
			Status:       loanDomain.RequestPending,
		}
		if err := r.LoanRequests.Create(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// AcceptRequest creates the loan directly active: the shop's acceptance and
// the cash handover are one step on this path. Without an appraisal the
// requested amount doubles as the top-up cap.
func (u *Usecase) AcceptRequest(ctx context.Context, shopID, requestID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.LoanRequests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrRequestNotFound
			}
			return err
		}
		if req.Status != loanDomain.RequestPending {
			return loanDomain.ErrRequestProcessed
		}
		if req.ShopID != shopID {
			return loanDomain.ErrRequestNotFound
		}

		c, err := r.Collaterals.GetByCollateralIDForUpdate(ctx, req.CollateralID)
		if err != nil {
			return err
		}
		if err := ensureNoOpenLoan(ctx, r, c.CollateralID); err != nil {
			return err
		}

		now := u.now()
		l := &loanDomain.Loan{
			LoanID:               id.NewID32(),
			CollateralID:         req.CollateralID,
			ShopID:               req.ShopID,
			CustomerID:           req.CustomerID,
			Principal:            req.Amount,
			MaxPrincipal:         req.Amount,
			RatePercent:          req.RatePercent,
			TermDays:             req.TermDays,
			OutstandingPrincipal: req.Amount,
		}
		l.Activate(now)
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		req.Status = loanDomain.RequestAccepted
		req.LoanID = &l.LoanID
		if err := r.LoanRequests.Save(ctx, req); err != nil {
			return err
		}

		if err := c.Transition(collateralDomain.StatusPledged, now); err != nil {
			return err
		}
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

// DeclineRequest flips the request to declined with no other side effects.
func (u *Usecase) DeclineRequest(ctx context.Context, shopID, requestID string) (*RequestDTO, error) {
	var dto *RequestDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, err := r.LoanRequests.GetByRequestIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrRequestNotFound
			}
			return err
		}
		if req.Status != loanDomain.RequestPending {
			return loanDomain.ErrRequestProcessed
		}
		if req.ShopID != shopID {
			return loanDomain.ErrRequestNotFound
		}

		req.Status = loanDomain.RequestDeclined
		if err := r.LoanRequests.Save(ctx, req); err != nil {
			return err
		}
		dto = toRequestDTO(req)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
