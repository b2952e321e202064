package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrNotActive         = errors.New("loan is not active")
	ErrInvalidTransition = errors.New("invalid loan state transition")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrCapExceeded       = errors.New("top-up exceeds maximum principal allowed")
	ErrNothingToSettle   = errors.New("loan has no outstanding balance to settle")
	ErrOpenLoanExists    = errors.New("collateral already secures an open loan")
)

type Status string

const (
	// StatusPendingOffer: shop-created offer awaiting customer acceptance.
	StatusPendingOffer Status = "pending_offer"
	StatusActive       Status = "active"
	StatusSettled      Status = "settled"
	StatusDefaulted    Status = "defaulted"
)

// Open reports whether the status counts against the one-open-loan-per-
// collateral rule.
func (s Status) Open() bool {
	return s == StatusPendingOffer || s == StatusActive
}

type Loan struct {
	ID           uint64  `gorm:"primaryKey;column:id" json:"-"`
	LoanID       string  `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	CollateralID string  `gorm:"size:32;index:idx_loans_collateral" json:"collateral_id"`
	ShopID       string  `gorm:"size:32;index:idx_loans_shop" json:"shop_id"`
	CustomerID   string  `gorm:"size:32;index:idx_loans_customer" json:"customer_id"`
	Principal    float64 `gorm:"type:decimal(18,2)" json:"principal"`
	// MaxPrincipal caps the outstanding principal across top-ups, normally
	// the appraised value of the collateral.
	MaxPrincipal         float64    `gorm:"type:decimal(18,2)" json:"max_principal"`
	RatePercent          float64    `gorm:"type:decimal(6,2)" json:"rate_percent"`
	TermDays             int        `json:"term_days"`
	OutstandingPrincipal float64    `gorm:"type:decimal(18,2)" json:"outstanding_principal"`
	AccruedInterest      float64    `gorm:"type:decimal(18,2)" json:"accrued_interest"`
	LateFees             float64    `gorm:"type:decimal(18,2)" json:"late_fees"`
	LastAccrualAt        *time.Time `json:"last_accrual_at,omitempty"`
	StartAt              *time.Time `json:"start_at,omitempty"`
	DueAt                *time.Time `json:"due_at,omitempty"`
	Status               Status     `gorm:"size:16;default:'pending_offer'" json:"status"`
	StatusUpdatedAt      time.Time  `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Activate flips a loan to active and pins its clock fields. Both offer
// acceptance paths go through here so the timestamp rules cannot diverge.
func (l *Loan) Activate(now time.Time) {
	due := now.AddDate(0, 0, l.TermDays)
	l.Status = StatusActive
	l.StartAt = &now
	l.DueAt = &due
	l.LastAccrualAt = &now
	l.StatusUpdatedAt = now
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

var (
	ErrRequestNotFound  = errors.New("loan request not found")
	ErrRequestProcessed = errors.New("loan request already processed")
)

// Request is a customer-initiated ask for a loan against their own
// collateral. Immutable once accepted or declined, except for the back-link
// to the loan it produced.
type Request struct {
	ID           uint64        `gorm:"primaryKey;column:id" json:"-"`
	RequestID    string        `gorm:"size:32;uniqueIndex:ux_loan_requests_request_id" json:"request_id"`
	CollateralID string        `gorm:"size:32;index:idx_loan_requests_collateral" json:"collateral_id"`
	ShopID       string        `gorm:"size:32;index:idx_loan_requests_shop" json:"shop_id"`
	CustomerID   string        `gorm:"size:32" json:"customer_id"`
	Amount       float64       `gorm:"type:decimal(18,2)" json:"amount"`
	TermDays     int           `json:"term_days"`
	RatePercent  float64       `gorm:"type:decimal(6,2)" json:"rate_percent"`
	Status       RequestStatus `gorm:"size:16;default:'pending'" json:"status"`
	LoanID       *string       `gorm:"size:32" json:"loan_id,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "loan_requests" }
