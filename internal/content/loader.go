package content

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rcarvalhosa/flare-engine/internal/animation"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

var (
	ErrInvalidPower     = errors.New("invalid power")
	ErrInvalidAnimation = errors.New("invalid animation")
	ErrInvalidHero      = errors.New("invalid hero")
)

var effectKinds = map[string]domain.EffectKind{
	"marker":       domain.EffectMarker,
	"speed":        domain.EffectSpeed,
	"stun":         domain.EffectStun,
	"knockback":    domain.EffectKnockback,
	"attack_speed": domain.EffectAttackSpeed,
	"shield":       domain.EffectShield,
}

var effectTriggers = map[string]domain.EffectTrigger{
	"":      domain.TriggerNone,
	"none":  domain.TriggerNone,
	"block": domain.TriggerBlock,
	"hit":   domain.TriggerHit,
}

// LoadDefault загружает встроенный контент.
func LoadDefault(fps int) (*Content, error) {
	return Load(defaultContent, fps)
}

// LoadFile загружает контент из файла.
func LoadFile(path string, fps int) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	c, err := Load(data, fps)
	if err != nil {
		return nil, fmt.Errorf("load content %s: %w", path, err)
	}
	return c, nil
}

// Load разбирает YAML и собирает контент. Длительности переводятся в кадры по fps.
//
// Ошибочные отдельные записи (способность неизвестного типа, анимация без кадров)
// отбрасываются с предупреждением. Ошибка возвращается, только если контент
// нельзя использовать целиком.
func Load(data []byte, fps int) (*Content, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	return Compile(f, fps)
}

// Compile собирает контент из уже разобранного документа.
func Compile(f File, fps int) (*Content, error) {
	if fps <= 0 {
		fps = 60
	}
	log := logger.Log.WithField("component", "content")

	defs := make([]powers.Power, 0, len(f.Powers))
	for _, spec := range f.Powers {
		p, err := compilePower(spec, fps)
		if err != nil {
			log.WithError(err).WithField("power", spec.Name).Warn("Skipping power")
			continue
		}
		defs = append(defs, p)
	}
	table, err := powers.NewTable(defs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPower, err)
	}

	c := &Content{
		Powers:     table,
		Animations: make(map[string]*animation.Set, len(f.Animations)),
		StepSounds: make(map[string][]string, len(f.StepSounds)),
	}

	for _, setSpec := range f.Animations {
		set := animation.NewSet()
		for _, a := range setSpec.Animations {
			def, err := compileAnimation(a, fps)
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"set":       setSpec.Name,
					"animation": a.Name,
				}).Warn("Skipping animation")
				continue
			}
			set.Add(def)
		}
		c.Animations[setSpec.Name] = set
	}

	for _, s := range f.StepSounds {
		c.StepSounds[s.ID] = append([]string(nil), s.Sounds...)
	}

	hero, err := compileHero(f.Hero, table, log)
	if err != nil {
		return nil, err
	}
	c.Hero = hero

	for _, e := range f.Enemies {
		if e.HP <= 0 {
			log.WithField("enemy", e.Name).Warn("Skipping enemy without HP")
			continue
		}
		c.Enemies = append(c.Enemies, compileEnemy(e, table, log))
	}

	c.checkReferences(log)

	log.WithFields(logrus.Fields{
		"powers":     len(defs),
		"animations": len(c.Animations),
		"enemies":    len(c.Enemies),
	}).Info("Content loaded")

	return c, nil
}

// msToFrames округляет вверх, чтобы короткие ненулевые длительности не пропадали.
func msToFrames(ms, fps int) int {
	if ms <= 0 {
		return 0
	}
	return int(math.Ceil(float64(ms) * float64(fps) / 1000))
}

func compileEffect(spec EffectSpec, fps int) (powers.EffectDef, error) {
	kind, ok := effectKinds[strings.ToLower(spec.Kind)]
	if !ok {
		return powers.EffectDef{}, fmt.Errorf("effect %q: unknown kind %q", spec.ID, spec.Kind)
	}
	trigger, ok := effectTriggers[strings.ToLower(spec.Trigger)]
	if !ok {
		return powers.EffectDef{}, fmt.Errorf("effect %q: unknown trigger %q", spec.ID, spec.Trigger)
	}
	return powers.EffectDef{
		ID:        spec.ID,
		Kind:      kind,
		Magnitude: spec.Magnitude,
		Duration:  msToFrames(spec.DurationMS, fps),
		Trigger:   trigger,
	}, nil
}

func compileEffects(specs []EffectSpec, fps int) ([]powers.EffectDef, error) {
	out := make([]powers.EffectDef, 0, len(specs))
	for _, s := range specs {
		e, err := compileEffect(s, fps)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func compilePower(spec PowerSpec, fps int) (powers.Power, error) {
	if spec.ID == 0 {
		return powers.Power{}, fmt.Errorf("%w: %q has no id", ErrInvalidPower, spec.Name)
	}
	typ, ok := enums.ParsePowerType(spec.Type)
	if !ok {
		return powers.Power{}, fmt.Errorf("%w: %q has unknown type %q", ErrInvalidPower, spec.Name, spec.Type)
	}

	post, err := compileEffects(spec.PostEffects, fps)
	if err != nil {
		return powers.Power{}, fmt.Errorf("%w: %q: %w", ErrInvalidPower, spec.Name, err)
	}
	target, err := compileEffects(spec.TargetEffects, fps)
	if err != nil {
		return powers.Power{}, fmt.Errorf("%w: %q: %w", ErrInvalidPower, spec.Name, err)
	}

	attackSpeed := spec.AttackSpeed
	if attackSpeed <= 0 {
		attackSpeed = 100
	}

	p := powers.Power{
		ID:               domain.PowerID(spec.ID),
		Name:             spec.Name,
		Type:             typ,
		NewState:         enums.ParsePowerState(spec.State),
		StartingPos:      enums.ParseStartingPos(spec.StartingPos),
		Face:             spec.Face,
		Passive:          spec.Passive,
		Cooldown:         msToFrames(spec.CooldownMS, fps),
		AttackAnim:       spec.AttackAnim,
		AttackSpeed:      attackSpeed,
		StateDuration:    msToFrames(spec.StateDurationMS, fps),
		ChargeSpeed:      spec.ChargeSpeed,
		PreventInterrupt: spec.PreventInterrupt,
		ManaCost:         spec.ManaCost,
		Damage:           spec.Damage,
		Range:            spec.Range,
		Radius:           spec.Radius,
		RequiresLOS:      spec.RequiresLOS,
		Sound:            spec.Sound,
		Summon:           spec.Summon,
		PostEffects:      post,
		TargetEffects:    target,
	}
	for _, c := range spec.PreChain {
		p.PreChain = append(p.PreChain, powers.ChainPower{PowerID: domain.PowerID(c.Power), Chance: c.Chance})
	}
	for _, r := range spec.ReplaceByEffect {
		p.ReplaceByEffect = append(p.ReplaceByEffect, powers.ReplaceRule{
			EffectID: r.Effect,
			Count:    r.Count,
			PowerID:  domain.PowerID(r.Power),
		})
	}
	return p, nil
}

func compileAnimation(spec AnimationSpec, fps int) (animation.Def, error) {
	if spec.Frames < 1 {
		return animation.Def{}, fmt.Errorf("%w: %q has no frames", ErrInvalidAnimation, spec.Name)
	}
	playback := animation.PlayOnce
	if spec.Type != "" {
		var err error
		if playback, err = animation.ParsePlaybackType(spec.Type); err != nil {
			return animation.Def{}, fmt.Errorf("%w: %w", ErrInvalidAnimation, err)
		}
	}
	return animation.Def{
		Name:        spec.Name,
		Frames:      spec.Frames,
		Duration:    msToFrames(spec.DurationMS, fps),
		ActiveFrame: spec.ActiveFrame,
		Type:        playback,
	}, nil
}

func resolvePower(id uint32, table *powers.Table, log *logrus.Entry, owner string) domain.PowerID {
	pid := domain.PowerID(id)
	if pid != domain.NoPower && !table.IsValid(pid) {
		log.WithFields(logrus.Fields{"owner": owner, "power_id": id}).Warn("Unknown power reference")
		return domain.NoPower
	}
	return pid
}

func compileHero(spec HeroSpec, table *powers.Table, log *logrus.Entry) (HeroTemplate, error) {
	if spec.HP <= 0 {
		return HeroTemplate{}, fmt.Errorf("%w: hp must be positive", ErrInvalidHero)
	}
	if len(spec.ActionBar) > ActionBarSlots {
		return HeroTemplate{}, fmt.Errorf("%w: action bar has %d slots, max %d", ErrInvalidHero, len(spec.ActionBar), ActionBarSlots)
	}

	h := HeroTemplate{
		Name:         spec.Name,
		HP:           spec.HP,
		MP:           spec.MP,
		Speed:        spec.Speed,
		MeleeRange:   spec.MeleeRange,
		AnimationSet: spec.AnimationSet,
		StepSounds:   spec.StepSounds,
		Permadeath:   spec.Permadeath,
	}
	if h.Name == "" {
		h.Name = "Hero"
	}
	if h.MeleeRange <= 0 {
		h.MeleeRange = domain.DefaultMeleeRange
	}
	for i, id := range spec.ActionBar {
		h.ActionBar[i] = resolvePower(id, table, log, h.Name)
	}
	for _, id := range spec.Passives {
		if pid := resolvePower(id, table, log, h.Name); pid != domain.NoPower {
			h.Passives = append(h.Passives, pid)
		}
	}
	return h, nil
}

func compileEnemy(spec EnemySpec, table *powers.Table, log *logrus.Entry) EnemyTemplate {
	t := EnemyTemplate{
		Name:         spec.Name,
		HP:           spec.HP,
		MP:           spec.MP,
		Speed:        spec.Speed,
		ThreatRange:  spec.ThreatRange,
		MeleeRange:   spec.MeleeRange,
		CombatStyle:  enums.ParseCombatStyle(spec.CombatStyle),
		MovementType: enums.ParseMovementType(spec.MovementType),
		AnimationSet: spec.AnimationSet,
		StepSounds:   spec.StepSounds,
	}
	if t.ThreatRange <= 0 {
		t.ThreatRange = domain.DefaultThreatRange
	}
	if t.MeleeRange <= 0 {
		t.MeleeRange = domain.DefaultMeleeRange
	}
	for _, id := range spec.Powers {
		if pid := resolvePower(id, table, log, spec.Name); pid != domain.NoPower {
			t.Powers = append(t.Powers, pid)
		}
	}
	return t
}

// checkReferences предупреждает о ссылках на отсутствующие наборы анимаций и звуков.
func (c *Content) checkReferences(log *logrus.Entry) {
	check := func(owner, set, steps string) {
		if _, ok := c.Animations[set]; set != "" && !ok {
			log.WithFields(logrus.Fields{"owner": owner, "animation_set": set}).Warn("Unknown animation set")
		}
		if _, ok := c.StepSounds[steps]; steps != "" && !ok {
			log.WithFields(logrus.Fields{"owner": owner, "step_sounds": steps}).Warn("Unknown step sound set")
		}
	}
	check(c.Hero.Name, c.Hero.AnimationSet, c.Hero.StepSounds)
	for _, e := range c.Enemies {
		check(e.Name, e.AnimationSet, e.StepSounds)
	}
}
