package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the remainder of the
	// surrounding transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// GetOpenByCollateralID returns the pending_offer or active loan secured
	// by the collateral, if any.
	GetOpenByCollateralID(ctx context.Context, collateralID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
}

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByRequestID(ctx context.Context, requestID string) (*Request, error)
	GetByRequestIDForUpdate(ctx context.Context, requestID string) (*Request, error)
	Save(ctx context.Context, r *Request) error
}
