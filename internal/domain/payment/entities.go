package payment

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrAlreadyProcessed = errors.New("payment already processed")
	ErrUnknownKind      = errors.New("unknown payment kind")
)

type Kind string

const (
	KindPrincipal  Kind = "principal"
	KindInterest   Kind = "interest"
	KindLateFee    Kind = "late_fee"
	KindTopup      Kind = "topup"
	KindSettlement Kind = "settlement"
)

// Adjusting reports whether the kind feeds the shop review queue and, on
// approval, decrements one loan balance field. Topup and settlement rows are
// written already approved and never pass through the queue.
func (k Kind) Adjusting() bool {
	return k == KindPrincipal || k == KindInterest || k == KindLateFee
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
)

type Payment struct {
	ID        uint64  `gorm:"primaryKey;column:id" json:"-"`
	PaymentID string  `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID    string  `gorm:"size:32;index:idx_payments_loan" json:"loan_id"`
	Amount    float64 `gorm:"type:decimal(18,2)" json:"amount"`
	Kind      Kind    `gorm:"size:16" json:"kind"`
	Status    Status  `gorm:"size:16;default:'pending'" json:"status"`
	// RecordedBy is the shop employee or customer who created the record.
	RecordedBy string    `gorm:"size:32" json:"recorded_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
