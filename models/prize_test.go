package models

import "testing"

func TestAmountForLevel(t *testing.T) {
	cases := []struct {
		level, want int
	}{
		{0, 100},
		{1, 200},
		{4, 1000},
		{9, 32000},
		{13, 500000},
		{14, 1000000},
	}
	for _, c := range cases {
		if got := AmountForLevel(c.level); got != c.want {
			t.Fatalf("AmountForLevel(%d)=%d, want %d", c.level, got, c.want)
		}
	}
}

func TestFallbackAmountFor(t *testing.T) {
	cases := []struct {
		level, want int
	}{
		{0, 0},
		{3, 0},
		{4, 0}, // level 4 not yet passed
		{5, 1000},
		{9, 1000},
		{10, 32000},
		{14, 32000},
	}
	for _, c := range cases {
		if got := FallbackAmountFor(c.level); got != c.want {
			t.Fatalf("FallbackAmountFor(%d)=%d, want %d", c.level, got, c.want)
		}
	}
}

func TestMaxAmount(t *testing.T) {
	if MaxAmount() != 1000000 {
		t.Fatalf("MaxAmount()=%d, want 1000000", MaxAmount())
	}
	if MaxAmount() != AmountForLevel(14) {
		t.Fatal("MaxAmount must equal the level-14 payout")
	}
}
