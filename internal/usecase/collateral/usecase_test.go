package collateral

import (
	"context"
	"testing"

	domain "github.com/SahanThiwanka/pawn-platform-sub000/internal/domain/collateral"
	"github.com/SahanThiwanka/pawn-platform-sub000/internal/testutil/repomock"
)

const ownerID = "aabbccddeeff00112233445566778899"

func TestRegister_CreatesAvailableCollateral(t *testing.T) {
	var created *domain.Collateral
	repo := &repomock.CollateralRepo{
		CreateFn: func(ctx context.Context, c *domain.Collateral) error {
			created = c
			return nil
		},
	}
	uc := NewUsecase(repo)

	dto, err := uc.Register(context.Background(), RegisterInput{
		OwnerID:        ownerID,
		Title:          "vinyl collection",
		Description:    "74 records",
		EstimatedValue: 350.00,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created == nil {
		t.Fatalf("repo.Create not called")
	}
	if dto.Status != string(domain.StatusAvailable) {
		t.Fatalf("status = %q, want available", dto.Status)
	}
	if len(dto.CollateralID) != 32 {
		t.Fatalf("CollateralID = %q, want 32 hex chars", dto.CollateralID)
	}
	if dto.OwnerID != ownerID || dto.EstimatedValue != 350.00 {
		t.Fatalf("unexpected DTO: %+v", dto)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	uc := NewUsecase(&repomock.CollateralRepo{})

	cases := []RegisterInput{
		{OwnerID: "", Title: "x", EstimatedValue: 10},
		{OwnerID: "short", Title: "x", EstimatedValue: 10},
		{OwnerID: ownerID, Title: "", EstimatedValue: 10},
		{OwnerID: ownerID, Title: "x", EstimatedValue: 0},
	}
	for i, in := range cases {
		if _, err := uc.Register(context.Background(), in); err == nil {
			t.Fatalf("case %d: want error, got nil", i)
		}
	}
}

func TestGet_PassesThrough(t *testing.T) {
	repo := &repomock.CollateralRepo{
		GetByCollateralIDFn: func(ctx context.Context, id string) (*domain.Collateral, error) {
			return &domain.Collateral{
				CollateralID: id,
				OwnerID:      ownerID,
				Title:        "vinyl collection",
				Status:       domain.StatusAvailable,
			}, nil
		},
	}
	uc := NewUsecase(repo)

	dto, err := uc.Get(context.Background(), "COL-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dto.CollateralID != "COL-1" || dto.Title != "vinyl collection" {
		t.Fatalf("unexpected DTO: %+v", dto)
	}
}
