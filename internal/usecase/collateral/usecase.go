package collateral

import (
	"context"
	"errors"
	"time"

	domain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/id"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

type RegisterInput struct {
	OwnerID        string  `json:"owner_id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EstimatedValue float64 `json:"estimated_value"`
	ImageURL       string  `json:"image_url"`
}

type CollateralDTO struct {
	CollateralID   string    `json:"collateral_id"`
	OwnerID        string    `json:"owner_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	EstimatedValue float64   `json:"estimated_value"`
	AppraisedValue *float64  `json:"appraised_value,omitempty"`
	ImageURL       string    `json:"image_url"`
	Status         string    `json:"status"`
	LoanID         *string   `json:"loan_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDTO(c *domain.Collateral) *CollateralDTO {
	return &CollateralDTO{
		CollateralID:   c.CollateralID,
		OwnerID:        c.OwnerID,
		Title:          c.Title,
		Description:    c.Description,
		EstimatedValue: c.EstimatedValue,
		AppraisedValue: c.AppraisedValue,
		ImageURL:       c.ImageURL,
		Status:         string(c.Status),
		LoanID:         c.LoanID,
		CreatedAt:      c.CreatedAt,
	}
}

// Register records a customer's item as available collateral. Image bytes
// live in object storage; only the URL is kept here.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*CollateralDTO, error) {
	if in.OwnerID == "" || len(in.OwnerID) != 32 || in.Title == "" || in.EstimatedValue <= 0 {
		return nil, errors.New("invalid input")
	}

	c := &domain.Collateral{
		CollateralID:    id.NewID32(),
		OwnerID:         in.OwnerID,
		Title:           in.Title,
		Description:     in.Description,
		EstimatedValue:  in.EstimatedValue,
		ImageURL:        in.ImageURL,
		Status:          domain.StatusAvailable,
		StatusUpdatedAt: time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, collateralID string) (*CollateralDTO, error) {
	c, err := u.repo.GetByCollateralID(ctx, collateralID)
	if err != nil {
		return nil, err
	}
	return toDTO(c), nil
}
