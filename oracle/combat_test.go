package oracle

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestExpectedDamage(t *testing.T) {
	c := NewCombat()
	tests := []struct {
		expr string
		want float64
	}{
		{"1d4", 2.5},
		{"1d8", 4.5},
		{"1d8+2", 6.5},
		{"2d6", 7},
		{"2d4", 5},
		{"1d6+1", 4.5},
	}
	for _, tc := range tests {
		got, err := c.ExpectedDamage(tc.expr, 0, 0)
		if err != nil {
			t.Fatalf("ExpectedDamage(%q) failed: %v", tc.expr, err)
		}
		if got != tc.want {
			t.Errorf("ExpectedDamage(%q) = %f, want %f", tc.expr, got, tc.want)
		}
	}
}

func TestExpectedDamageRatingsInScope(t *testing.T) {
	c := NewCombat()
	got, err := c.ExpectedDamage("1d4 + attacker - defender", 5, 2)
	if err != nil {
		t.Fatalf("ExpectedDamage failed: %v", err)
	}
	if got != 5.5 {
		t.Errorf("got %f, want 5.5", got)
	}
}

func TestExpectedDamageNeverNegative(t *testing.T) {
	c := NewCombat()
	got, err := c.ExpectedDamage("1d4 - 10", 0, 0)
	if err != nil {
		t.Fatalf("ExpectedDamage failed: %v", err)
	}
	if got != 0 {
		t.Errorf("got %f, want floor at 0", got)
	}
}

func TestExpectedDamageBadExpression(t *testing.T) {
	c := NewCombat()
	if _, err := c.ExpectedDamage("1d8 +", 0, 0); err == nil {
		t.Error("expected a compile error")
	}
}

func TestRollDamageStaysInRange(t *testing.T) {
	c := NewCombat()
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		got, err := c.RollDamage("1d8+2", 0, 0, rng)
		if err != nil {
			t.Fatalf("RollDamage failed: %v", err)
		}
		if got < 3 || got > 10 {
			t.Errorf("roll %d outside [3, 10]", got)
		}
	}
}

func TestWinProbability(t *testing.T) {
	tests := []struct {
		attacker, defender int
		want               float64
	}{
		{3, 3, 0.55}, // ties favor the attacker
		{6, 2, 0.85},
		{2, 6, 0.21},
		{1, 2, 0.45},
		{8, 1, 0.95}, // clamped ceiling
		{1, 8, 0.06},
		{0, 10, 0.05}, // clamped floor
	}
	for _, tc := range tests {
		if got := WinProbability(tc.attacker, tc.defender); got != tc.want {
			t.Errorf("WinProbability(%d, %d) = %f, want %f", tc.attacker, tc.defender, got, tc.want)
		}
	}
}

func TestWinProbabilityComplement(t *testing.T) {
	// Swapping sides double-counts the exact ties, which favor whoever is
	// attacking: both sides win them. With d10s the tie mass at rating gap
	// g is (10-|g|)/100.
	for gap := -3; gap <= 3; gap++ {
		a := WinProbability(5+gap, 5)
		b := WinProbability(5, 5+gap)
		ties := float64(10-abs(gap)) / 100
		if sum := a + b; math.Abs(sum-(1+ties)) > 1e-9 {
			t.Errorf("gap %d: probabilities sum to %f, want %f", gap, sum, 1+ties)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
