package mysql

import (
	"context"

	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := forUpdate(r.db.WithContext(ctx)).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetOpenByCollateralID(ctx context.Context, collateralID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("collateral_id = ? AND status IN ?", collateralID,
			[]loanDomain.Status{loanDomain.StatusPendingOffer, loanDomain.StatusActive}).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

type LoanRequestRepository struct{ db *gorm.DB }

func NewLoanRequestRepository(db *gorm.DB) *LoanRequestRepository {
	return &LoanRequestRepository{db: db}
}

func (r *LoanRequestRepository) Create(ctx context.Context, req *loanDomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *LoanRequestRepository) Save(ctx context.Context, req *loanDomain.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *LoanRequestRepository) GetByRequestID(ctx context.Context, requestID string) (*loanDomain.Request, error) {
	var out loanDomain.Request
	res := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}

func (r *LoanRequestRepository) GetByRequestIDForUpdate(ctx context.Context, requestID string) (*loanDomain.Request, error) {
	var out loanDomain.Request
	res := forUpdate(r.db.WithContext(ctx)).Where("request_id = ?", requestID).First(&out)
	return &out, res.Error
}
