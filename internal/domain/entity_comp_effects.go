package domain

// EffectKind - чем эффект влияет на носителя.
type EffectKind uint8

const (
	// EffectMarker ничего не меняет сам по себе; его наличие проверяют
	// правила замены способностей.
	EffectMarker EffectKind = iota
	EffectSpeed
	EffectStun
	EffectKnockback
	EffectAttackSpeed
	EffectShield
)

// EffectTrigger - событие, к которому привязан эффект.
type EffectTrigger uint8

const (
	TriggerNone EffectTrigger = iota
	TriggerBlock
	TriggerHit
)

// Effect - один активный статус-эффект.
type Effect struct {
	ID        string        `json:"id"`
	Kind      EffectKind    `json:"kind"`
	Magnitude float64       `json:"magnitude"`
	Timer     Timer         `json:"timer"`
	Trigger   EffectTrigger `json:"trigger,omitempty"`
	// Passive эффекты живут, пока их поддерживает пассивная способность.
	Passive bool    `json:"passive,omitempty"`
	Source  PowerID `json:"source,omitempty"`
}

// permanent - эффекты без длительности снимаются только явно.
func (e Effect) permanent() bool {
	return e.Timer.Duration == 0
}

// EffectsComponent - набор эффектов и посчитанные по ним агрегаты.
// Агрегаты пересчитываются сами при любом изменении набора.
type EffectsComponent struct {
	list []Effect

	// Speed - модификатор скорости в процентах (100 = без изменений).
	Speed          float64 `json:"speed"`
	Stun           bool    `json:"stun"`
	KnockbackSpeed float64 `json:"knockbackSpeed"`
	Shield         float64 `json:"shield"`

	TriggeredBlock bool `json:"triggeredBlock"`
	TriggeredHit   bool `json:"triggeredHit"`
}

// NewEffectsComponent возвращает пустой набор с нейтральными агрегатами.
func NewEffectsComponent() EffectsComponent {
	return EffectsComponent{Speed: 100}
}

// Add добавляет эффект. Повторное наложение того же эффекта от того же
// источника обновляет таймер вместо дублирования.
func (c *EffectsComponent) Add(e Effect) {
	if e.Trigger == TriggerBlock {
		c.TriggeredBlock = true
	}
	for i := range c.list {
		if c.list[i].ID == e.ID && c.list[i].Source == e.Source {
			c.list[i] = e
			c.recompute()
			return
		}
	}
	c.list = append(c.list, e)
	c.recompute()
}

// Count возвращает количество активных эффектов с данным ID.
func (c *EffectsComponent) Count(id string) int {
	n := 0
	for _, e := range c.list {
		if e.ID == id {
			n++
		}
	}
	return n
}

// Has проверяет, что эффект id наложен хотя бы count раз (count <= 0 значит 1).
func (c *EffectsComponent) Has(id string, count int) bool {
	if count <= 0 {
		count = 1
	}
	return c.Count(id) >= count
}

// HasTrigger - есть ли эффекты, привязанные к событию.
func (c *EffectsComponent) HasTrigger(trigger EffectTrigger) bool {
	for _, e := range c.list {
		if e.Trigger == trigger {
			return true
		}
	}
	return false
}

// List возвращает копию активных эффектов (для снапшотов).
func (c *EffectsComponent) List() []Effect {
	out := make([]Effect, len(c.list))
	copy(out, c.list)
	return out
}

// ClearEffects снимает всё, включая флаги срабатываний.
func (c *EffectsComponent) ClearEffects() {
	c.list = nil
	c.TriggeredBlock = false
	c.TriggeredHit = false
	c.recompute()
}

// ClearTriggerEffects снимает эффекты, привязанные к событию.
func (c *EffectsComponent) ClearTriggerEffects(trigger EffectTrigger) {
	kept := c.list[:0]
	for _, e := range c.list {
		if e.Trigger != trigger {
			kept = append(kept, e)
		}
	}
	c.list = kept
	c.recompute()
}

// RemovePassives снимает эффекты, которые поддерживались пассивными способностями.
func (c *EffectsComponent) RemovePassives() {
	kept := c.list[:0]
	for _, e := range c.list {
		if !e.Passive {
			kept = append(kept, e)
		}
	}
	c.list = kept
	c.recompute()
}

// AttackSpeed - модификатор скорости анимации атаки в процентах.
func (c *EffectsComponent) AttackSpeed() float64 {
	speed := 100.0
	for _, e := range c.list {
		if e.Kind == EffectAttackSpeed {
			speed = speed * e.Magnitude / 100
		}
	}
	return speed
}

// Logic продвигает таймеры эффектов на кадр и выбрасывает истёкшие.
func (c *EffectsComponent) Logic() {
	if c.TriggeredHit {
		c.ClearTriggerEffects(TriggerHit)
		c.TriggeredHit = false
	}

	kept := c.list[:0]
	for _, e := range c.list {
		if !e.permanent() {
			e.Timer = e.Timer.Tick()
			if e.Timer.IsEnd() {
				continue
			}
		}
		kept = append(kept, e)
	}
	c.list = kept
	c.recompute()
}

func (c *EffectsComponent) recompute() {
	c.Speed = 100
	c.Stun = false
	c.KnockbackSpeed = 0
	c.Shield = 0

	for _, e := range c.list {
		switch e.Kind {
		case EffectSpeed:
			c.Speed = c.Speed * e.Magnitude / 100
		case EffectStun:
			c.Stun = true
		case EffectKnockback:
			if e.Magnitude > c.KnockbackSpeed {
				c.KnockbackSpeed = e.Magnitude
			}
		case EffectShield:
			c.Shield += e.Magnitude
		}
	}
}
