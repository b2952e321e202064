package mysql

import (
	"context"

	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"

	"gorm.io/gorm"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, c *collateralDomain.Collateral) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollateralRepository) Save(ctx context.Context, c *collateralDomain.Collateral) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CollateralRepository) GetByCollateralID(ctx context.Context, collateralID string) (*collateralDomain.Collateral, error) {
	var out collateralDomain.Collateral
	res := r.db.WithContext(ctx).Where("collateral_id = ?", collateralID).First(&out)
	return &out, res.Error
}

func (r *CollateralRepository) GetByCollateralIDForUpdate(ctx context.Context, collateralID string) (*collateralDomain.Collateral, error) {
	var out collateralDomain.Collateral
	res := forUpdate(r.db.WithContext(ctx)).Where("collateral_id = ?", collateralID).First(&out)
	return &out, res.Error
}
