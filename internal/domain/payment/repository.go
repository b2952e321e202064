package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	GetByPaymentIDForUpdate(ctx context.Context, paymentID string) (*Payment, error)
	ListByLoanID(ctx context.Context, loanID string) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
}
