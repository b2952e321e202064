package payment

import (
	"context"
	"errors"
	"time"

	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	paymentDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/accrual"

	"gorm.io/gorm"
)

// Usecase is the shop-side review queue for cash payment records. Approval
// must flip the payment and decrement the loan balance as one indivisible
// unit; a payment approved twice must decrement exactly once.
type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

type PaymentDTO struct {
	PaymentID string    `json:"payment_id"`
	LoanID    string    `json:"loan_id"`
	Amount    float64   `json:"amount"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(p *paymentDomain.Payment) *PaymentDTO {
	return &PaymentDTO{
		PaymentID: p.PaymentID,
		LoanID:    p.LoanID,
		Amount:    p.Amount,
		Kind:      string(p.Kind),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

// Approve applies a pending payment to its loan: the balance field matching
// the payment kind is decremented, floored at zero. If the application clears
// every balance on an active loan, the loan settles and the collateral is
// redeemed in the same transaction.
func (u *Usecase) Approve(ctx context.Context, paymentID string) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return paymentDomain.ErrNotFound
			}
			return err
		}
		if p.Status != paymentDomain.StatusPending {
			return paymentDomain.ErrAlreadyProcessed
		}

		l, err := r.Loans.GetByLoanIDForUpdate(ctx, p.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrNotFound
			}
			return err
		}

		now := u.now()
		// Interest owed up to this instant must be on the books before the
		// payment lands against it.
		if l.Status == loanDomain.StatusActive && l.LastAccrualAt != nil {
			delta, checkpoint := accrual.Accrue(l.OutstandingPrincipal, l.RatePercent, *l.LastAccrualAt, now)
			if delta != 0 || !checkpoint.Equal(*l.LastAccrualAt) {
				l.AccruedInterest = accrual.Add(l.AccruedInterest, delta)
				l.LastAccrualAt = &checkpoint
			}
		}

		switch p.Kind {
		case paymentDomain.KindPrincipal:
			l.OutstandingPrincipal = accrual.Sub(l.OutstandingPrincipal, p.Amount)
		case paymentDomain.KindInterest:
			l.AccruedInterest = accrual.Sub(l.AccruedInterest, p.Amount)
		case paymentDomain.KindLateFee:
			l.LateFees = accrual.Sub(l.LateFees, p.Amount)
		default:
			return paymentDomain.ErrUnknownKind
		}

		cleared := l.OutstandingPrincipal == 0 && l.AccruedInterest == 0 && l.LateFees == 0
		if cleared && l.Status == loanDomain.StatusActive {
			l.Status = loanDomain.StatusSettled
			c, err := r.Collaterals.GetByCollateralIDForUpdate(ctx, l.CollateralID)
			if err != nil {
				return err
			}
			if err := c.Transition(collateralDomain.StatusRedeemed, now); err != nil {
				return err
			}
			if err := r.Collaterals.Save(ctx, c); err != nil {
				return err
			}
		}
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		p.Status = paymentDomain.StatusApproved
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Decline flips a pending payment to declined; the loan is untouched.
func (u *Usecase) Decline(ctx context.Context, paymentID string) (*PaymentDTO, error) {
	var dto *PaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Payments.GetByPaymentIDForUpdate(ctx, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return paymentDomain.ErrNotFound
			}
			return err
		}
		if p.Status != paymentDomain.StatusPending {
			return paymentDomain.ErrAlreadyProcessed
		}
		p.Status = paymentDomain.StatusDeclined
		if err := r.Payments.Save(ctx, p); err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
