package ledger

import (
	"context"
	"errors"
	"time"

	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	paymentDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/uow"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/accrual"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/id"

	"gorm.io/gorm"
)

// Usecase owns a loan's running balances. Every operation runs inside a
// loan-row transaction, and every balance-affecting operation accrues
// interest first, so a stale checkpoint can never hide interest from a
// settlement or top-up figure.
type Usecase struct {
	uow uow.UnitOfWork
	now func() time.Time
}

func NewUsecase(tx uow.UnitOfWork) *Usecase {
	return &Usecase{uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

type BalanceDTO struct {
	LoanID               string     `json:"loan_id"`
	Status               string     `json:"status"`
	OutstandingPrincipal float64    `json:"outstanding_principal"`
	AccruedInterest      float64    `json:"accrued_interest"`
	LateFees             float64    `json:"late_fees"`
	TotalDue             float64    `json:"total_due"`
	MaxPrincipal         float64    `json:"max_principal"`
	RatePercent          float64    `json:"rate_percent"`
	LastAccrualAt        *time.Time `json:"last_accrual_at,omitempty"`
	DueAt                *time.Time `json:"due_at,omitempty"`
}

func toBalanceDTO(l *loanDomain.Loan) *BalanceDTO {
	total := accrual.Add(accrual.Add(l.OutstandingPrincipal, l.AccruedInterest), l.LateFees)
	return &BalanceDTO{
		LoanID:               l.LoanID,
		Status:               string(l.Status),
		OutstandingPrincipal: l.OutstandingPrincipal,
		AccruedInterest:      l.AccruedInterest,
		LateFees:             l.LateFees,
		TotalDue:             total,
		MaxPrincipal:         l.MaxPrincipal,
		RatePercent:          l.RatePercent,
		LastAccrualAt:        l.LastAccrualAt,
		DueAt:                l.DueAt,
	}
}

// accrueLocked folds pending interest into the locked loan row. No-op for
// any status but active, and within the same elapsed-day window.
func (u *Usecase) accrueLocked(l *loanDomain.Loan, now time.Time) {
	if l.Status != loanDomain.StatusActive || l.LastAccrualAt == nil {
		return
	}
	delta, checkpoint := accrual.Accrue(l.OutstandingPrincipal, l.RatePercent, *l.LastAccrualAt, now)
	if delta == 0 && checkpoint.Equal(*l.LastAccrualAt) {
		return
	}
	l.AccruedInterest = accrual.Add(l.AccruedInterest, delta)
	l.LastAccrualAt = &checkpoint
	l.StatusUpdatedAt = now
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loanDomain.ErrNotFound
	}
	return err
}

// AccrueToNow folds pending interest into the loan and advances the accrual
// checkpoint. Idempotent within the same day.
func (u *Usecase) AccrueToNow(ctx context.Context, loanID string) (*BalanceDTO, error) {
	var dto *BalanceDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		u.accrueLocked(l, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toBalanceDTO(l)
		return nil
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return dto, nil
}

// TotalDue is the read path for "how much to pay off now": accrue, persist
// the new checkpoint, and report the balance triple.
func (u *Usecase) TotalDue(ctx context.Context, loanID string) (*BalanceDTO, error) {
	return u.AccrueToNow(ctx, loanID)
}

// ApplyTopup raises the outstanding principal, never past MaxPrincipal, and
// records the cash-out as an already-approved topup payment (self-service,
// no shop review).
func (u *Usecase) ApplyTopup(ctx context.Context, loanID string, amount float64) (*BalanceDTO, error) {
	if amount <= 0 {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *BalanceDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrNotActive
		}
		now := u.now()
		u.accrueLocked(l, now)

		if accrual.Exceeds(l.OutstandingPrincipal, amount, l.MaxPrincipal) {
			return loanDomain.ErrCapExceeded
		}
		l.OutstandingPrincipal = accrual.Add(l.OutstandingPrincipal, amount)
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		p := &paymentDomain.Payment{
			PaymentID:  id.NewID32(),
			LoanID:     l.LoanID,
			Amount:     amount,
			Kind:       paymentDomain.KindTopup,
			Status:     paymentDomain.StatusApproved,
			RecordedBy: l.CustomerID,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		dto = toBalanceDTO(l)
		return nil
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return dto, nil
}

// Settle pays off principal, interest and fees in one operation, zeroes the
// balances, and returns the collateral to its owner.
func (u *Usecase) Settle(ctx context.Context, loanID string) (*BalanceDTO, error) {
	var dto *BalanceDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			if l.Status == loanDomain.StatusSettled {
				return loanDomain.ErrNothingToSettle
			}
			return loanDomain.ErrNotActive
		}
		now := u.now()
		u.accrueLocked(l, now)

		total := accrual.Add(accrual.Add(l.OutstandingPrincipal, l.AccruedInterest), l.LateFees)
		if total <= 0 {
			return loanDomain.ErrNothingToSettle
		}

		p := &paymentDomain.Payment{
			PaymentID:  id.NewID32(),
			LoanID:     l.LoanID,
			Amount:     total,
			Kind:       paymentDomain.KindSettlement,
			Status:     paymentDomain.StatusApproved,
			RecordedBy: l.CustomerID,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		l.OutstandingPrincipal = 0
		l.AccruedInterest = 0
		l.LateFees = 0
		l.Status = loanDomain.StatusSettled
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

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

		dto = toBalanceDTO(l)
		return nil
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return dto, nil
}

// MarkDefaulted is the shop declaring the loan failed. Balances stay as they
// were for the record; the collateral becomes eligible for auction.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) (*BalanceDTO, error) {
	var dto *BalanceDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status == loanDomain.StatusSettled || l.Status == loanDomain.StatusDefaulted {
			return loanDomain.ErrInvalidTransition
		}
		now := u.now()
		u.accrueLocked(l, now)

		l.Status = loanDomain.StatusDefaulted
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		c, err := r.Collaterals.GetByCollateralIDForUpdate(ctx, l.CollateralID)
		if err != nil {
			return err
		}
		if err := c.Transition(collateralDomain.StatusDefaulted, now); err != nil {
			return err
		}
		if err := r.Collaterals.Save(ctx, c); err != nil {
			return err
		}

		dto = toBalanceDTO(l)
		return nil
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return dto, nil
}

// RecordCash enters a shop-collected cash payment into the review queue. The
// loan balance is untouched until a reviewer approves the record.
func (u *Usecase) RecordCash(ctx context.Context, loanID, recordedBy string, kind paymentDomain.Kind, amount float64) (*paymentDomain.Payment, error) {
	if amount <= 0 {
		return nil, loanDomain.ErrInvalidAmount
	}
	if !kind.Adjusting() {
		return nil, paymentDomain.ErrUnknownKind
	}

	var out *paymentDomain.Payment
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrNotActive
		}
		p := &paymentDomain.Payment{
			PaymentID:  id.NewID32(),
			LoanID:     l.LoanID,
			Amount:     amount,
			Kind:       kind,
			Status:     paymentDomain.StatusPending,
			RecordedBy: recordedBy,
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return out, nil
}

// AddLateFee charges a fee onto an active loan past its due date.
func (u *Usecase) AddLateFee(ctx context.Context, loanID string, amount float64) (*BalanceDTO, error) {
	if amount <= 0 {
		return nil, loanDomain.ErrInvalidAmount
	}

	var dto *BalanceDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrNotActive
		}
		now := u.now()
		if l.DueAt == nil || now.Before(*l.DueAt) {
			return loanDomain.ErrInvalidTransition
		}
		u.accrueLocked(l, now)

		l.LateFees = accrual.Add(l.LateFees, amount)
		l.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toBalanceDTO(l)
		return nil
	})
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return dto, nil
}
