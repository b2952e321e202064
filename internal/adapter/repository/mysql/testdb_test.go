package mysql

import (
	"testing"
	"time"

	auctionDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/auction"
	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"
	paymentDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/payment"
	"github.com/SahanThiwanka/pawn-platform-sub000/pkg/id"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates an in-memory sqlite DB with every core table. The
// domain models avoid MySQL-only column types, so they migrate as-is.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&collateralDomain.Collateral{},
		&loanDomain.Loan{},
		&loanDomain.Request{},
		&paymentDomain.Payment{},
		&auctionDomain.Auction{},
		&auctionDomain.Bid{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(loanID, collateralID string) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:               loanID,
		CollateralID:         collateralID,
		ShopID:               id.NewID32(),
		CustomerID:           id.NewID32(),
		Principal:            1_000.00,
		MaxPrincipal:         1_500.00,
		RatePercent:          24,
		TermDays:             30,
		OutstandingPrincipal: 1_000.00,
		Status:               loanDomain.StatusPendingOffer,
		StatusUpdatedAt:      time.Now().UTC(),
	}
}
