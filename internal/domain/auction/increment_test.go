package auction

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func TestPercentIncrement(t *testing.T) {
	policy := PercentIncrement(1)

	// no prior bids: base is the start price
	if min := policy(1000, 0); min != 1010 {
		t.Fatalf("min next bid = %v, want 1010", min)
	}
	// with a highest bid the base moves up
	if min := policy(1000, 1010); min != 1020.1 {
		t.Fatalf("min next bid = %v, want 1020.1", min)
	}
	// highest below start price never lowers the base
	if min := policy(1000, 500); min != 1010 {
		t.Fatalf("min next bid = %v, want 1010", min)
	}
}

func TestTieredIncrement(t *testing.T) {
	policy := TieredIncrement(DefaultTiers)

	cases := []struct {
		start, highest, want float64
	}{
		{50, 0, 55},           // first band: +5
		{100, 0, 125},         // second band: +25
		{1000, 0, 1100},       // third band: +100
		{1000, 5000, 5100},    // highest drives the band
		{200_000, 0, 200_250}, // beyond the table: last step
	}
	for _, tc := range cases {
		if got := policy(tc.start, tc.highest); got != tc.want {
			t.Fatalf("policy(%v, %v) = %v, want %v", tc.start, tc.highest, got, tc.want)
		}
	}
}

func TestIsLive(t *testing.T) {
	a := Auction{
		Status:  StatusLive,
		StartAt: mustTime(t, "2025-06-01T10:00:00Z"),
		EndAt:   mustTime(t, "2025-06-02T10:00:00Z"),
	}

	if !a.IsLive(mustTime(t, "2025-06-01T10:00:00Z")) {
		t.Fatalf("start boundary should be live")
	}
	if a.IsLive(mustTime(t, "2025-06-02T10:00:00Z")) {
		t.Fatalf("end boundary should not be live")
	}
	if a.IsLive(mustTime(t, "2025-06-01T09:59:59Z")) {
		t.Fatalf("before start should not be live")
	}

	a.Status = StatusScheduled
	if a.IsLive(mustTime(t, "2025-06-01T12:00:00Z")) {
		t.Fatalf("scheduled auction is not live even inside the window")
	}
}
