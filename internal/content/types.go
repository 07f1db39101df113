package content

// File - корневой документ контента. По нему же строится JSON-схема (cmd/schema).
type File struct {
	Hero       HeroSpec           `yaml:"hero" json:"hero"`
	Powers     []PowerSpec        `yaml:"powers" json:"powers"`
	Animations []AnimationSetSpec `yaml:"animations" json:"animations"`
	StepSounds []StepSoundSpec    `yaml:"step_sounds" json:"step_sounds"`
	Enemies    []EnemySpec        `yaml:"enemies" json:"enemies,omitempty"`
}

// HeroSpec - стартовые характеристики аватара.
type HeroSpec struct {
	Name         string   `yaml:"name" json:"name"`
	HP           int      `yaml:"hp" json:"hp" jsonschema:"minimum=1"`
	MP           int      `yaml:"mp" json:"mp"`
	Speed        float64  `yaml:"speed" json:"speed" jsonschema:"description=Tiles per frame"`
	MeleeRange   float64  `yaml:"melee_range" json:"melee_range,omitempty"`
	AnimationSet string   `yaml:"animation_set" json:"animation_set"`
	StepSounds   string   `yaml:"step_sounds" json:"step_sounds,omitempty"`
	Permadeath   bool     `yaml:"permadeath" json:"permadeath,omitempty"`
	ActionBar    []uint32 `yaml:"action_bar" json:"action_bar,omitempty" jsonschema:"maxItems=12,description=Power ids for bar slots 1..0 then Main1 and Main2"`
	Passives     []uint32 `yaml:"passives" json:"passives,omitempty"`
}

// PowerSpec - способность. Длительности в миллисекундах.
type PowerSpec struct {
	ID          uint32 `yaml:"id" json:"id" jsonschema:"minimum=1"`
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type" jsonschema:"enum=fixed,enum=missile,enum=repeater,enum=spawn,enum=block"`
	State       string `yaml:"state" json:"state,omitempty" jsonschema:"enum=instant,enum=attack"`
	StartingPos string `yaml:"starting_pos" json:"starting_pos,omitempty" jsonschema:"enum=source,enum=target,enum=melee"`

	Face    bool `yaml:"face" json:"face,omitempty"`
	Passive bool `yaml:"passive" json:"passive,omitempty"`

	CooldownMS       int     `yaml:"cooldown_ms" json:"cooldown_ms,omitempty"`
	AttackAnim       string  `yaml:"attack_anim" json:"attack_anim,omitempty"`
	AttackSpeed      float64 `yaml:"attack_speed" json:"attack_speed,omitempty" jsonschema:"description=Percent; 0 means 100"`
	StateDurationMS  int     `yaml:"state_duration_ms" json:"state_duration_ms,omitempty"`
	ChargeSpeed      float64 `yaml:"charge_speed" json:"charge_speed,omitempty"`
	PreventInterrupt bool    `yaml:"prevent_interrupt" json:"prevent_interrupt,omitempty"`

	ManaCost    int     `yaml:"mana_cost" json:"mana_cost,omitempty"`
	Damage      int     `yaml:"damage" json:"damage,omitempty"`
	Range       float64 `yaml:"range" json:"range,omitempty"`
	Radius      float64 `yaml:"radius" json:"radius,omitempty"`
	RequiresLOS bool    `yaml:"requires_los" json:"requires_los,omitempty"`
	Sound       string  `yaml:"sound" json:"sound,omitempty"`
	// Summon - имя шаблона противника, которого призывает SPAWN.
	Summon string `yaml:"summon" json:"summon,omitempty"`

	PreChain        []ChainSpec   `yaml:"pre_chain" json:"pre_chain,omitempty"`
	ReplaceByEffect []ReplaceSpec `yaml:"replace_by_effect" json:"replace_by_effect,omitempty"`
	PostEffects     []EffectSpec  `yaml:"post_effects" json:"post_effects,omitempty"`
	TargetEffects   []EffectSpec  `yaml:"target_effects" json:"target_effects,omitempty"`
}

type ChainSpec struct {
	Power  uint32 `yaml:"power" json:"power"`
	Chance int    `yaml:"chance" json:"chance" jsonschema:"minimum=0,maximum=100"`
}

type ReplaceSpec struct {
	Effect string `yaml:"effect" json:"effect"`
	Count  int    `yaml:"count" json:"count,omitempty"`
	Power  uint32 `yaml:"power" json:"power"`
}

type EffectSpec struct {
	ID         string  `yaml:"id" json:"id"`
	Kind       string  `yaml:"kind" json:"kind" jsonschema:"enum=marker,enum=speed,enum=stun,enum=knockback,enum=attack_speed,enum=shield"`
	Magnitude  float64 `yaml:"magnitude" json:"magnitude,omitempty"`
	DurationMS int     `yaml:"duration_ms" json:"duration_ms,omitempty" jsonschema:"description=0 means permanent"`
	Trigger    string  `yaml:"trigger" json:"trigger,omitempty" jsonschema:"enum=none,enum=block,enum=hit"`
}

// AnimationSetSpec - набор анимаций одной сущности. Первая анимация - по умолчанию.
type AnimationSetSpec struct {
	Name       string          `yaml:"name" json:"name"`
	Animations []AnimationSpec `yaml:"animations" json:"animations"`
}

type AnimationSpec struct {
	Name        string `yaml:"name" json:"name"`
	Frames      int    `yaml:"frames" json:"frames" jsonschema:"minimum=1"`
	DurationMS  int    `yaml:"duration_ms" json:"duration_ms"`
	ActiveFrame int    `yaml:"active_frame" json:"active_frame,omitempty"`
	Type        string `yaml:"type" json:"type,omitempty" jsonschema:"enum=play_once,enum=looped,enum=back_forth"`
}

// StepSoundSpec - набор звуков шагов, из которого MOVE выбирает случайный.
type StepSoundSpec struct {
	ID     string   `yaml:"id" json:"id"`
	Sounds []string `yaml:"sounds" json:"sounds"`
}

// EnemySpec - шаблон противника.
type EnemySpec struct {
	Name         string   `yaml:"name" json:"name"`
	HP           int      `yaml:"hp" json:"hp" jsonschema:"minimum=1"`
	MP           int      `yaml:"mp" json:"mp,omitempty"`
	Speed        float64  `yaml:"speed" json:"speed"`
	ThreatRange  float64  `yaml:"threat_range" json:"threat_range,omitempty"`
	MeleeRange   float64  `yaml:"melee_range" json:"melee_range,omitempty"`
	CombatStyle  string   `yaml:"combat_style" json:"combat_style,omitempty" jsonschema:"enum=default,enum=aggressive,enum=passive"`
	MovementType string   `yaml:"movement_type" json:"movement_type,omitempty" jsonschema:"enum=normal,enum=flying,enum=intangible"`
	AnimationSet string   `yaml:"animation_set" json:"animation_set"`
	StepSounds   string   `yaml:"step_sounds" json:"step_sounds,omitempty"`
	Powers       []uint32 `yaml:"powers" json:"powers,omitempty" jsonschema:"description=First power is the basic attack"`
}
