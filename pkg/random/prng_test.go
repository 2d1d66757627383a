package random

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatal("same seed should produce same sequence")
		}
	}
	if a.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", a.Seed())
	}
}

func TestRanges(t *testing.T) {
	p := New(7)
	for i := 0; i < 1000; i++ {
		if v := p.IntBetween(1, 3); v < 1 || v > 3 {
			t.Fatalf("IntBetween(1,3) = %d", v)
		}
		if v := p.FloatBetween(1000, 3000); v < 1000 || v >= 3000 {
			t.Fatalf("FloatBetween(1000,3000) = %f", v)
		}
		if s := p.Sign(); s != 1 && s != -1 {
			t.Fatalf("Sign() = %f", s)
		}
	}

	t.Run("退化区间", func(t *testing.T) {
		if p.IntBetween(5, 5) != 5 || p.FloatBetween(2, 2) != 2 || p.Intn(0) != 0 {
			t.Error("degenerate ranges should return the lower bound")
		}
	})
}

func TestZeroSeedUsesClock(t *testing.T) {
	if New(0).Seed() == 0 {
		t.Error("zero seed should be replaced")
	}
}
