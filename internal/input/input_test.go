package input

import (
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

func TestApplyReleasesLocks(t *testing.T) {
	var s State
	s.Apply(Frame{Pressed: []Key{KeyMain1, KeyShift}, Mouse: domain.FPoint{X: 3, Y: 4}, UsingMouse: true})
	s.Lock[KeyMain1] = true

	if s.Held(KeyMain1) {
		t.Error("Locked key must not be held")
	}

	// Кнопка продолжает удерживаться - блок остаётся
	s.Apply(Frame{Pressed: []Key{KeyMain1}})
	if !s.Lock[KeyMain1] {
		t.Error("Lock must survive while the key stays pressed")
	}
	if s.Pressing[KeyShift] {
		t.Error("Shift must be released")
	}

	s.Apply(Frame{})
	if s.Lock[KeyMain1] || s.Pressing[KeyMain1] {
		t.Error("Releasing the key must clear the lock")
	}
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"up", KeyUp, true},
		{"MAIN2", KeyMain2, true},
		{"bar_0", KeyBar0, true},
		{"jump", KeyCount, false},
	}
	for _, tt := range tests {
		got, ok := ParseKey(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseKey(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
	if KeyBar5.String() != "BAR_5" || Key(200).String() != "UNKNOWN" {
		t.Error("Unexpected key names")
	}
}
