// Package engine собирает ядро в работающую игру: сессия с фиксированным
// порядком кадра, поведение NPC и инстанс, крутящий сессию в своей горутине.
package engine

import (
	"fmt"

	"github.com/rcarvalhosa/flare-engine/internal/actionbar"
	"github.com/rcarvalhosa/flare-engine/internal/avatar"
	"github.com/rcarvalhosa/flare-engine/internal/combat"
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/content"
	"github.com/rcarvalhosa/flare-engine/internal/core/types"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
	"github.com/rcarvalhosa/flare-engine/pkg/dungeon"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Типы записей журнала.
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogError  = "ERROR"
)

// maxQueuedFrames - сколько снимков ввода может ждать своего кадра.
const maxQueuedFrames = 4

// focusRange - дальше этого расстояния враги не рассматриваются как повод для боя.
const focusRange = 16

// Session - одна игровая сессия: уровень, аватар, NPC и бой.
// Всё состояние живёт здесь, глобального состояния у ядра нет.
// Не потокобезопасна: ей владеет одна горутина (Instance или реплей).
type Session struct {
	cfg     config.Config
	content *content.Content
	roller  utils.Roller
	ids     types.Allocator
	log     *logrus.Entry

	level    *dungeon.Level
	col      *systems.MapCollision
	entities []*domain.Entity
	npcs     map[types.EntityID]*npc

	hero   *domain.Entity
	input  *input.State
	frames []input.Frame

	exec   *powers.Executor
	Avatar *avatar.Avatar
	Bar    *actionbar.Bar
	Combat *combat.Coordinator

	tick     int
	logs     []api.LogEntry
	logSeq   int
	sounds   []string
	gameOver bool
}

// NewSandbox генерирует уровень из сида конфига и расселяет по нему
// всех противников из контента.
func NewSandbox(cfg config.Config, c *content.Content) *Session {
	roller := utils.NewSeededRoller(cfg.Seed)
	names := make([]string, 0, len(c.Enemies))
	for _, e := range c.Enemies {
		names = append(names, e.Name)
	}
	return NewSession(cfg, c, dungeon.Generate(roller, names), roller)
}

// NewSession собирает сессию на готовом уровне.
func NewSession(cfg config.Config, c *content.Content, level *dungeon.Level, roller utils.Roller) *Session {
	s := &Session{
		cfg:     cfg,
		content: c,
		roller:  roller,
		level:   level,
		col:     level.Collision(),
		npcs:    make(map[types.EntityID]*npc),
		input:   &input.State{},
		log:     logger.Log.WithFields(logrus.Fields{"component": "session", "seed": cfg.Seed}),
	}

	s.hero = &domain.Entity{
		ID:         s.ids.Next(enums.EntityTypePlayer),
		Type:       enums.EntityTypePlayer,
		Stats:      c.Hero.NewStats(level.Start),
		StepSounds: c.Hero.StepSounds,
	}
	s.addEntity(s.hero)

	s.exec = powers.NewExecutor(c.Powers, s, roller)
	s.exec.SetSpawner(s)
	s.exec.OnMessage(func(msg string) { s.addLog(msg, LogCombat) })

	s.Combat = combat.NewCoordinator(s, s.hero, roller, cfg)

	s.Avatar = avatar.New(s.hero, avatar.Deps{
		Map:        s.col,
		Powers:     c.Powers,
		Activator:  s.exec,
		Gate:       s.Combat,
		Policy:     s.Combat.Gate(),
		Animations: avatar.FromSet(c.AnimationSet(c.Hero.AnimationSet)),
		Steps:      c,
		Roller:     roller,
		Input:      s.input,
		Config:     cfg,
	})
	s.Bar = actionbar.New(c.Hero.ActionBar, actionbar.Deps{
		Avatar: s.Avatar,
		Powers: c.Powers,
		Ranges: s.exec,
		Map:    s.col,
		Gate:   s.Combat,
		Input:  s.input,
		Config: cfg,
	})

	for _, sp := range level.Spawns {
		t, ok := c.Enemy(sp.Template)
		if !ok {
			s.log.WithField("template", sp.Template).Warn("Unknown enemy template in level")
			continue
		}
		s.spawnNPC(t, sp.Pos, false)
	}

	s.log.WithFields(logrus.Fields{
		"entities": len(s.entities),
		"start":    level.Start,
	}).Info("Session created")
	return s
}

// Entities - все сущности уровня, включая трупы.
func (s *Session) Entities() []*domain.Entity { return s.entities }

func (s *Session) Collision() *systems.MapCollision { return s.col }

func (s *Session) Hero() *domain.Entity { return s.hero }

func (s *Session) Level() *dungeon.Level { return s.level }

func (s *Session) CurrentTick() int { return s.tick }

func (s *Session) Config() config.Config { return s.cfg }

// GameOver - аватар погиб окончательно.
func (s *Session) GameOver() bool { return s.gameOver }

func (s *Session) addEntity(e *domain.Entity) {
	s.entities = append(s.entities, e)
	s.col.Block(e.Stats.Pos.X, e.Stats.Pos.Y, e.Stats.Hero || e.Stats.HeroAlly)
}

func (s *Session) spawnNPC(t content.EnemyTemplate, pos domain.FPoint, ally bool) *domain.Entity {
	typ := enums.EntityTypeEnemy
	if ally {
		typ = enums.EntityTypeAlly
	}
	e := &domain.Entity{
		ID:         s.ids.Next(typ),
		Type:       typ,
		Stats:      t.NewStats(pos),
		StepSounds: t.StepSounds,
	}
	e.Stats.HeroAlly = ally

	n := newNPC(s, e, t)
	e.Behavior = n
	s.npcs[e.ID] = n
	s.addEntity(e)
	return e
}

// Spawn исполняет способность призыва: ставит сущность из шаблона в точку.
// Призванный союзником или игроком становится союзником. Если заклинатель
// в бою, призванный вступает в бой.
func (s *Session) Spawn(p *powers.Power, caster *domain.Entity, at domain.FPoint) bool {
	t, ok := s.content.Enemy(p.Summon)
	if !ok {
		s.log.WithField("summon", p.Summon).Warn("Unknown summon template")
		return false
	}
	pos := at.Tile().Center()
	if !s.col.IsValidPosition(pos.X, pos.Y, t.MovementType, systems.CollideNormal) {
		return false
	}

	e := s.spawnNPC(t, pos, caster.Stats.Hero || caster.Stats.HeroAlly)
	if caster.Stats.InCombat() {
		s.Combat.AddCombatant(e)
	}
	s.addLog(fmt.Sprintf("%s summons %s.", caster.Stats.Name, e.Stats.Name), LogCombat)
	return true
}

// QueueInput ставит снимок ввода в очередь. Каждый кадр применяет один снимок,
// поэтому короткое нажатие не теряется между кадрами.
func (s *Session) QueueInput(f input.Frame) {
	if len(s.frames) >= maxQueuedFrames {
		s.frames = s.frames[1:]
	}
	s.frames = append(s.frames, f)
}

// EndTurn - то же, что кнопка конца хода.
func (s *Session) EndTurn() bool {
	if !s.Combat.CanEndTurn() {
		return false
	}
	s.Bar.EndTurn()
	return true
}

// Respawn воскрешает аватар в точке at или на старте уровня.
func (s *Session) Respawn(at *domain.FPoint) bool {
	point := s.level.Start
	if at != nil {
		point = *at
	}
	tile := point.Tile()
	if !s.col.IsWalkable(tile.X, tile.Y, s.hero.Stats.MovementType) {
		return false
	}
	if s.col.IsBlocked(point.X, point.Y) && tile != s.hero.Stats.Pos.Tile() {
		return false
	}
	if !s.Avatar.Respawn(point) {
		return false
	}
	s.input.ReleaseAll()
	s.gameOver = false
	return true
}

// Tick продвигает сессию ровно на один кадр.
func (s *Session) Tick() {
	// 1. Ввод
	if len(s.frames) > 0 {
		s.input.Apply(s.frames[0])
		s.frames = s.frames[1:]
	}

	// 2. Враг под курсором, затем панель действий
	var cursor *domain.Entity
	if s.input.UsingMouse && !s.input.OverUI {
		cursor = systems.EnemyAt(s.input.Mouse, s.entities)
	}
	s.Avatar.SetCursorEnemy(cursor)
	s.Bar.Logic()
	s.Bar.CheckAction()

	// 3. Аватар
	s.Avatar.Logic()

	// 4. NPC: обслуживание всем, решения только тем, кто не в бою
	for _, e := range s.entities {
		n := s.npcs[e.ID]
		if n == nil {
			continue
		}
		n.upkeep(e)
		if !e.Stats.InCombat() {
			e.Logic()
		}
	}

	// 5. Трупы
	s.markCorpses()

	// 6. Бой: ходы NPC исполняются внутри
	focus := systems.NearestHostileTo(s.hero, s.entities, focusRange, s.col)
	s.Combat.CheckCombatState(s.hero, focus)

	// 7. Сигналы
	s.collectSignals()
	s.tick++
}

func (s *Session) markCorpses() {
	for _, e := range s.entities {
		st := e.Stats
		if e == s.hero || st.IsAlive() || st.Corpse {
			continue
		}
		st.Corpse = true
		st.CurState = enums.StateDead
		st.ConsumeHit()
		s.col.Unblock(st.Pos.X, st.Pos.Y)
		s.log.WithFields(logrus.Fields{"entity": e.ID, "name": st.Name}).Debug("Entity became a corpse")
	}
}

func (s *Session) collectSignals() {
	sig := s.Avatar.TakeSignals()
	for _, m := range sig.Messages {
		s.addLog(m, LogInfo)
	}
	s.sounds = append(s.sounds, sig.Sounds...)
	if sig.GameOver && !s.gameOver {
		s.gameOver = true
		s.addLog("You have died.", LogInfo)
		s.log.Info("Game over")
	}

	msgs, sounds := s.Bar.TakeFeedback()
	for _, m := range msgs {
		s.addLog(m, LogInfo)
	}
	s.sounds = append(s.sounds, sounds...)

	for _, m := range s.Combat.TakeMessages() {
		s.addLog(m, LogCombat)
	}
}

// TakeSounds отдаёт накопленные звуки и очищает их.
func (s *Session) TakeSounds() []string {
	out := s.sounds
	s.sounds = nil
	return out
}
