package collateral

import "context"

type Repository interface {
	Create(ctx context.Context, c *Collateral) error
	GetByCollateralID(ctx context.Context, collateralID string) (*Collateral, error)
	// GetByCollateralIDForUpdate locks the row for the remainder of the
	// surrounding transaction.
	GetByCollateralIDForUpdate(ctx context.Context, collateralID string) (*Collateral, error)
	Save(ctx context.Context, c *Collateral) error
}
