package accrual

import (
	"testing"
	"time"
)

func TestAccrue_WholeDays(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		outstanding float64
		apr         float64
		elapsed     time.Duration
		wantDelta   float64
	}{
		{"ten days at 24 APR", 1000, 24, 10 * 24 * time.Hour, 6.58},
		{"one day", 1000, 24, 24 * time.Hour, 0.66},
		{"thirty days", 500, 36, 30 * 24 * time.Hour, 14.79},
		{"fraction of a day", 1000, 24, 23 * time.Hour, 0},
		{"exactly zero", 1000, 24, 0, 0},
		{"clock went backwards", 1000, 24, -24 * time.Hour, 0},
		{"zero principal", 0, 24, 10 * 24 * time.Hour, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			delta, checkpoint := Accrue(tc.outstanding, tc.apr, start, start.Add(tc.elapsed))
			if delta != tc.wantDelta {
				t.Fatalf("delta = %v, want %v", delta, tc.wantDelta)
			}
			if tc.wantDelta == 0 && tc.elapsed < 24*time.Hour {
				if !checkpoint.Equal(start) {
					t.Fatalf("checkpoint moved on zero-day accrual: %v", checkpoint)
				}
			}
		})
	}
}

func TestAccrue_CheckpointAdvances(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(36 * time.Hour)

	delta, checkpoint := Accrue(1000, 24, start, now)
	if delta != 0.66 {
		t.Fatalf("delta = %v, want 0.66", delta)
	}
	if !checkpoint.Equal(now) {
		t.Fatalf("checkpoint = %v, want %v", checkpoint, now)
	}

	// a second call from the new checkpoint within the day is a no-op
	delta2, checkpoint2 := Accrue(1000, 24, checkpoint, now)
	if delta2 != 0 || !checkpoint2.Equal(checkpoint) {
		t.Fatalf("second accrual not idempotent: delta=%v checkpoint=%v", delta2, checkpoint2)
	}
}

func TestAccrue_RoundsHalfUpOnce(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	// 123.45 * 10% / 365 * 1 day = 0.033821... → 0.03
	delta, _ := Accrue(123.45, 10, start, start.Add(24*time.Hour))
	if delta != 0.03 {
		t.Fatalf("delta = %v, want 0.03", delta)
	}
	// same inputs over 15 days: 0.50732... → 0.51, not 15 * 0.03
	delta, _ = Accrue(123.45, 10, start, start.Add(15*24*time.Hour))
	if delta != 0.51 {
		t.Fatalf("delta = %v, want 0.51 (single rounding per call)", delta)
	}
}

func TestSub_FlooredAtZero(t *testing.T) {
	if got := Sub(10, 25); got != 0 {
		t.Fatalf("Sub(10,25) = %v, want 0", got)
	}
	if got := Sub(0.3, 0.1); got != 0.2 {
		t.Fatalf("Sub(0.3,0.1) = %v, want 0.2", got)
	}
}

func TestExceeds(t *testing.T) {
	if Exceeds(500, 250, 800) {
		t.Fatalf("750 should not exceed 800")
	}
	if !Exceeds(500, 350, 800) {
		t.Fatalf("850 should exceed 800")
	}
	if Exceeds(500, 300, 800) {
		t.Fatalf("exactly at the cap should not exceed it")
	}
}
