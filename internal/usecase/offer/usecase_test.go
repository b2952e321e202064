package offer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SahanThiwanka/pawn-platform-sub000/internal/adapter/repository/mysql"
	collateralDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	loanDomain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/loan"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	db  *gorm.DB
	uc  *Usecase
	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&collateralDomain.Collateral{},
		&loanDomain.Loan{},
		&loanDomain.Request{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	f := &fixture{db: db, uc: NewUsecase(mysql.NewGormUoW(db)), now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	f.uc.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) seedCollateral(t *testing.T, collateralID, ownerID string, status collateralDomain.Status) {
	t.Helper()
	c := &collateralDomain.Collateral{
		CollateralID:   collateralID,
		OwnerID:        ownerID,
		Title:          "silver coin set",
		EstimatedValue: 900.00,
		Status:         status,
	}
	if err := f.db.Create(c).Error; err != nil {
		t.Fatalf("seed collateral: %v", err)
	}
}

func (f *fixture) collateral(t *testing.T, collateralID string) *collateralDomain.Collateral {
	t.Helper()
	var c collateralDomain.Collateral
	if err := f.db.Where("collateral_id = ?", collateralID).First(&c).Error; err != nil {
		t.Fatalf("load collateral: %v", err)
	}
	return &c
}

func TestCreateOffer_ShopPath(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-1", "CUST-1", collateralDomain.StatusAvailable)

	dto, err := f.uc.CreateOffer(context.Background(), CreateOfferInput{
		ShopID:         "SHOP-1",
		CollateralID:   "COL-1",
		AppraisedValue: 1_000.00,
		LTVPercent:     70,
		RatePercent:    24,
		TermDays:       30,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	// floor(1000 * 70%) = 700
	if dto.Principal != 700.00 || dto.MaxPrincipal != 1_000.00 {
		t.Fatalf("unexpected amounts: %+v", dto)
	}
	if dto.Status != string(loanDomain.StatusPendingOffer) {
		t.Fatalf("status = %q, want pending_offer", dto.Status)
	}
	if dto.CustomerID != "CUST-1" {
		t.Fatalf("CustomerID = %q, want the collateral owner", dto.CustomerID)
	}
	if dto.StartAt != nil || dto.DueAt != nil {
		t.Fatalf("clock fields set before acceptance: %+v", dto)
	}

	c := f.collateral(t, "COL-1")
	if c.Status != collateralDomain.StatusAppraised {
		t.Fatalf("collateral status = %q, want appraised", c.Status)
	}
	if c.AppraisedValue == nil || *c.AppraisedValue != 1_000.00 {
		t.Fatalf("appraised value not stamped: %+v", c)
	}
}

func TestCreateOffer_RejectsSecondOpenLoan(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-2", "CUST-1", collateralDomain.StatusAvailable)

	in := CreateOfferInput{ShopID: "SHOP-1", CollateralID: "COL-2", AppraisedValue: 1_000.00, LTVPercent: 70, RatePercent: 24, TermDays: 30}
	if _, err := f.uc.CreateOffer(context.Background(), in); err != nil {
		t.Fatalf("first offer: %v", err)
	}
	_, err := f.uc.CreateOffer(context.Background(), in)
	if !errors.Is(err, loanDomain.ErrOpenLoanExists) {
		t.Fatalf("want ErrOpenLoanExists, got %v", err)
	}
}

func TestCreateOffer_InvalidTerms(t *testing.T) {
	f := newFixture(t)
	base := CreateOfferInput{ShopID: "SHOP-1", CollateralID: "COL-X", AppraisedValue: 1_000.00, LTVPercent: 70, RatePercent: 24, TermDays: 30}

	cases := []func(*CreateOfferInput){
		func(in *CreateOfferInput) { in.AppraisedValue = 0 },
		func(in *CreateOfferInput) { in.LTVPercent = 0 },
		func(in *CreateOfferInput) { in.LTVPercent = 120 },
		func(in *CreateOfferInput) { in.RatePercent = -1 },
		func(in *CreateOfferInput) { in.TermDays = 0 },
	}
	for i, mutate := range cases {
		in := base
		mutate(&in)
		if _, err := f.uc.CreateOffer(context.Background(), in); !errors.Is(err, loanDomain.ErrInvalidAmount) {
			t.Fatalf("case %d: want ErrInvalidAmount, got %v", i, err)
		}
	}
}

func TestAcceptOffer_ActivatesLoanAndPledges(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-3", "CUST-1", collateralDomain.StatusAvailable)

	offer, err := f.uc.CreateOffer(context.Background(), CreateOfferInput{
		ShopID: "SHOP-1", CollateralID: "COL-3", AppraisedValue: 1_000.00, LTVPercent: 70, RatePercent: 24, TermDays: 30,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}

	dto, err := f.uc.AcceptOffer(context.Background(), "CUST-1", offer.LoanID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if dto.Status != string(loanDomain.StatusActive) {
		t.Fatalf("status = %q, want active", dto.Status)
	}
	if dto.StartAt == nil || !dto.StartAt.Equal(f.now) {
		t.Fatalf("StartAt = %v, want the acceptance time", dto.StartAt)
	}
	wantDue := f.now.AddDate(0, 0, 30)
	if dto.DueAt == nil || !dto.DueAt.Equal(wantDue) {
		t.Fatalf("DueAt = %v, want %v", dto.DueAt, wantDue)
	}

	if c := f.collateral(t, "COL-3"); c.Status != collateralDomain.StatusPledged {
		t.Fatalf("collateral status = %q, want pledged", c.Status)
	}
}

func TestAcceptOffer_OnlyOwner(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-4", "CUST-1", collateralDomain.StatusAvailable)

	offer, err := f.uc.CreateOffer(context.Background(), CreateOfferInput{
		ShopID: "SHOP-1", CollateralID: "COL-4", AppraisedValue: 1_000.00, LTVPercent: 70, RatePercent: 24, TermDays: 30,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}

	_, err = f.uc.AcceptOffer(context.Background(), "CUST-STRANGER", offer.LoanID)
	if !errors.Is(err, collateralDomain.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
}

func TestAcceptOffer_TwiceRejected(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-5", "CUST-1", collateralDomain.StatusAvailable)

	offer, err := f.uc.CreateOffer(context.Background(), CreateOfferInput{
		ShopID: "SHOP-1", CollateralID: "COL-5", AppraisedValue: 1_000.00, LTVPercent: 70, RatePercent: 24, TermDays: 30,
	})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}
	if _, err := f.uc.AcceptOffer(context.Background(), "CUST-1", offer.LoanID); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	_, err = f.uc.AcceptOffer(context.Background(), "CUST-1", offer.LoanID)
	if !errors.Is(err, loanDomain.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestSubmitRequest_CustomerPath(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-6", "CUST-1", collateralDomain.StatusAvailable)

	dto, err := f.uc.SubmitRequest(context.Background(), SubmitRequestInput{
		CustomerID:   "CUST-1",
		CollateralID: "COL-6",
		ShopID:       "SHOP-1",
		Amount:       600.00,
		TermDays:     60,
		RatePercent:  30,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if dto.Status != string(loanDomain.RequestPending) {
		t.Fatalf("status = %q, want pending", dto.Status)
	}
	// submitting alone must not move the collateral
	if c := f.collateral(t, "COL-6"); c.Status != collateralDomain.StatusAvailable {
		t.Fatalf("collateral status = %q, want available", c.Status)
	}
}

func TestSubmitRequest_OnlyOwner(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-7", "CUST-1", collateralDomain.StatusAvailable)

	_, err := f.uc.SubmitRequest(context.Background(), SubmitRequestInput{
		CustomerID:   "CUST-STRANGER",
		CollateralID: "COL-7",
		ShopID:       "SHOP-1",
		Amount:       600.00,
		TermDays:     60,
		RatePercent:  30,
	})
	if !errors.Is(err, collateralDomain.ErrNotOwner) {
		t.Fatalf("want ErrNotOwner, got %v", err)
	}
}

func TestAcceptRequest_CreatesActiveLoan(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-8", "CUST-1", collateralDomain.StatusAvailable)

	req, err := f.uc.SubmitRequest(context.Background(), SubmitRequestInput{
		CustomerID: "CUST-1", CollateralID: "COL-8", ShopID: "SHOP-1", Amount: 600.00, TermDays: 60, RatePercent: 30,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	dto, err := f.uc.AcceptRequest(context.Background(), "SHOP-1", req.RequestID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if dto.Status != string(loanDomain.StatusActive) {
		t.Fatalf("status = %q, want active", dto.Status)
	}
	// without an appraisal the requested amount is the cap
	if dto.Principal != 600.00 || dto.MaxPrincipal != 600.00 {
		t.Fatalf("unexpected amounts: %+v", dto)
	}

	// the request carries a back-link to the loan it produced
	var stored loanDomain.Request
	if err := f.db.Where("request_id = ?", req.RequestID).First(&stored).Error; err != nil {
		t.Fatalf("load request: %v", err)
	}
	if stored.Status != loanDomain.RequestAccepted || stored.LoanID == nil || *stored.LoanID != dto.LoanID {
		t.Fatalf("unexpected request: %+v", stored)
	}

	if c := f.collateral(t, "COL-8"); c.Status != collateralDomain.StatusPledged {
		t.Fatalf("collateral status = %q, want pledged", c.Status)
	}
}

func TestAcceptRequest_WrongShop(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-9", "CUST-1", collateralDomain.StatusAvailable)

	req, err := f.uc.SubmitRequest(context.Background(), SubmitRequestInput{
		CustomerID: "CUST-1", CollateralID: "COL-9", ShopID: "SHOP-1", Amount: 600.00, TermDays: 60, RatePercent: 30,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = f.uc.AcceptRequest(context.Background(), "SHOP-OTHER", req.RequestID)
	if !errors.Is(err, loanDomain.ErrRequestNotFound) {
		t.Fatalf("want ErrRequestNotFound, got %v", err)
	}
}

func TestDeclineRequest_NoSideEffects(t *testing.T) {
	f := newFixture(t)
	f.seedCollateral(t, "COL-10", "CUST-1", collateralDomain.StatusAvailable)

	req, err := f.uc.SubmitRequest(context.Background(), SubmitRequestInput{
		CustomerID: "CUST-1", CollateralID: "COL-10", ShopID: "SHOP-1", Amount: 600.00, TermDays: 60, RatePercent: 30,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	dto, err := f.uc.DeclineRequest(context.Background(), "SHOP-1", req.RequestID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if dto.Status != string(loanDomain.RequestDeclined) {
		t.Fatalf("status = %q, want declined", dto.Status)
	}
	if c := f.collateral(t, "COL-10"); c.Status != collateralDomain.StatusAvailable {
		t.Fatalf("collateral moved on decline: %q", c.Status)
	}

	// a declined request cannot be accepted later
	_, err = f.uc.AcceptRequest(context.Background(), "SHOP-1", req.RequestID)
	if !errors.Is(err, loanDomain.ErrRequestProcessed) {
		t.Fatalf("want ErrRequestProcessed, got %v", err)
	}
}
