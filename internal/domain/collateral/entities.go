package collateral

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("collateral not found")
	ErrInvalidTransition = errors.New("invalid collateral status transition")
	ErrNotOwner          = errors.New("actor does not own this collateral")
)

type Status string

const (
	// StatusAvailable: registered by its owner, not yet part of any loan.
	StatusAvailable Status = "available"
	// StatusAppraised: a shop valued the item and a loan offer is pending.
	StatusAppraised Status = "appraised"
	// StatusPledged: the item secures an active loan.
	StatusPledged Status = "pledged"
	// StatusRedeemed: terminal, loan fully settled and item returned.
	StatusRedeemed Status = "redeemed"
	// StatusDefaulted: terminal, loan defaulted; item eligible for auction.
	StatusDefaulted Status = "defaulted"
)

// transitions is the allowed edge set of the pledge state machine.
// available→pledged covers the customer-initiated path, which activates a
// loan without a prior shop appraisal. appraised→defaulted covers a shop
// defaulting a loan that was never accepted by the customer.
var transitions = map[Status][]Status{
	StatusAvailable: {StatusAppraised, StatusPledged},
	StatusAppraised: {StatusPledged, StatusDefaulted},
	StatusPledged:   {StatusRedeemed, StatusDefaulted},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Collateral struct {
	ID             uint64   `gorm:"primaryKey;column:id" json:"-"`
	CollateralID   string   `gorm:"size:32;uniqueIndex:ux_collaterals_collateral_id" json:"collateral_id"`
	OwnerID        string   `gorm:"size:32;index:idx_collaterals_owner" json:"owner_id"`
	Title          string   `gorm:"size:255" json:"title"`
	Description    string   `gorm:"type:text" json:"description"`
	EstimatedValue float64  `gorm:"type:decimal(18,2)" json:"estimated_value"`
	AppraisedValue *float64 `gorm:"type:decimal(18,2)" json:"appraised_value,omitempty"`
	ImageURL       string   `gorm:"type:text" json:"image_url"`
	Status         Status   `gorm:"size:16;default:'available'" json:"status"`
	// LoanID back-links the loan currently secured by this item, if any.
	LoanID          *string   `gorm:"size:32;index" json:"loan_id,omitempty"`
	StatusUpdatedAt time.Time `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Collateral) TableName() string { return "collaterals" }

// Transition moves the collateral to the given status, stamping the change
// time. Rejected with ErrInvalidTransition if the edge is not allowed.
func (c *Collateral) Transition(to Status, now time.Time) error {
	if !CanTransition(c.Status, to) {
		return ErrInvalidTransition
	}
	c.Status = to
	c.StatusUpdatedAt = now
	return nil
}
