package domain

import "testing"

func TestEffects_Aggregates(t *testing.T) {
	c := NewEffectsComponent()

	c.Add(Effect{ID: "slow", Kind: EffectSpeed, Magnitude: 50})
	c.Add(Effect{ID: "stun", Kind: EffectStun, Timer: NewTimer(1)})
	c.Add(Effect{ID: "push", Kind: EffectKnockback, Magnitude: 0.3, Timer: NewTimer(3)})

	if c.Speed != 50 {
		t.Errorf("Speed = %v, want 50", c.Speed)
	}
	if !c.Stun {
		t.Error("Stun not aggregated")
	}
	if c.KnockbackSpeed != 0.3 {
		t.Errorf("KnockbackSpeed = %v", c.KnockbackSpeed)
	}

	c.Logic()

	if c.Stun {
		t.Error("one-frame stun must expire after one Logic()")
	}
	if c.Speed != 50 {
		t.Error("permanent slow must survive Logic()")
	}
}

func TestEffects_HasCount(t *testing.T) {
	c := NewEffectsComponent()
	c.Add(Effect{ID: "rage", Source: 1})
	c.Add(Effect{ID: "rage", Source: 2})
	c.Add(Effect{ID: "rage", Source: 2}) // обновление, не дубликат

	tests := []struct {
		id    string
		count int
		want  bool
	}{
		{"rage", 0, true},
		{"rage", 2, true},
		{"rage", 3, false},
		{"calm", 1, false},
	}
	for _, tt := range tests {
		if got := c.Has(tt.id, tt.count); got != tt.want {
			t.Errorf("Has(%q, %d) = %v, want %v", tt.id, tt.count, got, tt.want)
		}
	}
}

func TestEffects_ClearTriggerAndPassives(t *testing.T) {
	c := NewEffectsComponent()
	c.Add(Effect{ID: "guard", Trigger: TriggerBlock})
	c.Add(Effect{ID: "aura", Passive: true})
	c.Add(Effect{ID: "thorns", Trigger: TriggerHit})

	if !c.TriggeredBlock {
		t.Fatal("block trigger effect must raise TriggeredBlock")
	}

	c.ClearTriggerEffects(TriggerBlock)
	if c.HasTrigger(TriggerBlock) {
		t.Error("block trigger effects survived ClearTriggerEffects")
	}

	c.RemovePassives()
	if c.Has("aura", 1) {
		t.Error("passive effect survived RemovePassives")
	}

	c.TriggeredHit = true
	c.Logic()
	if c.Has("thorns", 1) || c.TriggeredHit {
		t.Error("hit trigger effects must be consumed on the next Logic()")
	}

	c.ClearEffects()
	if len(c.List()) != 0 || c.TriggeredBlock {
		t.Error("ClearEffects must remove everything")
	}
}

func TestEffects_AttackSpeed(t *testing.T) {
	c := NewEffectsComponent()
	if c.AttackSpeed() != 100 {
		t.Fatalf("neutral attack speed = %v", c.AttackSpeed())
	}
	c.Add(Effect{ID: "haste", Kind: EffectAttackSpeed, Magnitude: 200})
	if c.AttackSpeed() != 200 {
		t.Errorf("AttackSpeed() = %v, want 200", c.AttackSpeed())
	}
}
