package utils

import "testing"

func TestSeededRoller_Deterministic(t *testing.T) {
	a := NewSeededRoller(42)
	b := NewSeededRoller(42)

	for i := 0; i < 50; i++ {
		if x, y := a.RandBetween(1, 20), b.RandBetween(1, 20); x != y {
			t.Fatalf("roll %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSeededRoller_RandBetweenBounds(t *testing.T) {
	r := NewSeededRoller(7)
	for i := 0; i < 1000; i++ {
		v := r.RandBetween(1, 20)
		if v < 1 || v > 20 {
			t.Fatalf("RandBetween(1, 20) = %d", v)
		}
	}
	if v := r.RandBetween(5, 5); v != 5 {
		t.Errorf("RandBetween(5, 5) = %d", v)
	}
}

func TestSeededRoller_PercentChanceExtremes(t *testing.T) {
	r := NewSeededRoller(1)
	for i := 0; i < 200; i++ {
		if r.PercentChance(-100) || r.PercentChance(0) {
			t.Fatal("non-positive chance fired")
		}
		if !r.PercentChance(100) {
			t.Fatal("100% chance did not fire")
		}
	}
}

func TestStringToSeed(t *testing.T) {
	if StringToSeed("hero") != StringToSeed("hero") {
		t.Error("seed must be stable")
	}
	if StringToSeed("hero") == StringToSeed("villain") {
		t.Error("different strings should give different seeds")
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if len(a) != 16 {
		t.Errorf("len(GenerateID()) = %d, want 16", len(a))
	}
	if a == b {
		t.Error("two ids should differ")
	}
}
