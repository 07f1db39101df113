package avatar

import (
	"os"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/animation"
	"github.com/rcarvalhosa/flare-engine/internal/config"
	"github.com/rcarvalhosa/flare-engine/internal/core/types"
	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/internal/powers"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{})
	os.Exit(m.Run())
}

type testWorld struct {
	entities []*domain.Entity
	col      *systems.MapCollision
}

func (w *testWorld) Entities() []*domain.Entity        { return w.entities }
func (w *testWorld) Collision() *systems.MapCollision { return w.col }

// neverRoller не срабатывает ни на каком шансе.
type neverRoller struct{}

func (neverRoller) RandBetween(min, _ int) int { return min }
func (neverRoller) PercentChance(int) bool     { return false }
func (neverRoller) Intn(int) int               { return 0 }

type activation struct {
	id     domain.PowerID
	target domain.FPoint
}

// recordingActivator исполняет способности настоящим исполнителем и запоминает вызовы.
type recordingActivator struct {
	exec  *powers.Executor
	calls []activation
}

func (r *recordingActivator) Activate(id domain.PowerID, caster *domain.Entity, target domain.FPoint) bool {
	r.calls = append(r.calls, activation{id: id, target: target})
	return r.exec.Activate(id, caster, target)
}

func (r *recordingActivator) ActivatePreChain(id domain.PowerID, caster *domain.Entity, target domain.FPoint) {
	r.exec.ActivatePreChain(id, caster, target)
}

func (r *recordingActivator) ActivatePassives(caster *domain.Entity) {
	r.exec.ActivatePassives(caster)
}

// fakeGate - упрощённая очередь боя: ход игрока, пока есть действия.
type fakeGate struct {
	playerTurn bool
	actions    int
	spent      int
	start      domain.FPoint
	moveRange  float64
}

func (g *fakeGate) IsPlayerTurn() bool  { return g.playerTurn }
func (g *fakeGate) CanTakeAction() bool { return g.playerTurn && g.actions > 0 }

func (g *fakeGate) IsValidMovement(dest domain.FPoint) bool {
	return g.CanTakeAction() && domain.CalcDist(g.start, dest) <= g.moveRange
}

func (g *fakeGate) SpendAction() {
	g.spent++
	g.actions--
	if g.actions <= 0 {
		g.playerTurn = false
	}
}

func testPowers() []powers.Power {
	return []powers.Power{
		{ID: 1, Name: "Slash", Type: enums.PowerTypeFixed, NewState: enums.PowerStateAttack,
			StartingPos: enums.StartingPosMelee, Damage: 3, Cooldown: 30, AttackAnim: "swing", Face: true,
			ReplaceByEffect: []powers.ReplaceRule{{EffectID: "rage", Count: 1, PowerID: 2}}},
		{ID: 2, Name: "Rage Slash", Type: enums.PowerTypeFixed, NewState: enums.PowerStateAttack,
			StartingPos: enums.StartingPosMelee, Damage: 6, Cooldown: 45, AttackAnim: "swing"},
		{ID: 3, Name: "Battle Cry", Type: enums.PowerTypeFixed, NewState: enums.PowerStateInstant,
			StartingPos: enums.StartingPosSource, Cooldown: 20,
			ReplaceByEffect: []powers.ReplaceRule{{EffectID: "haste", Count: 1, PowerID: 5}}},
		{ID: 4, Name: "Shield Block", Type: enums.PowerTypeBlock, NewState: enums.PowerStateNone,
			Cooldown: 60, AttackAnim: "block",
			PostEffects: []powers.EffectDef{{ID: "block", Kind: domain.EffectShield, Magnitude: 2, Duration: 10, Trigger: domain.TriggerBlock}}},
		{ID: 5, Name: "War Cry", Type: enums.PowerTypeFixed, NewState: enums.PowerStateInstant,
			StartingPos: enums.StartingPosSource, Cooldown: 50},
	}
}

func testAnimations() *animation.Set {
	return animation.NewSet(
		animation.Def{Name: "stance", Frames: 1, Duration: 1, Type: animation.Looped},
		animation.Def{Name: "run", Frames: 4, Duration: 8, ActiveFrame: 2, Type: animation.Looped},
		animation.Def{Name: "swing", Frames: 3, Duration: 6, ActiveFrame: 1, Type: animation.PlayOnce},
		animation.Def{Name: "block", Frames: 1, Duration: 1, Type: animation.Looped},
		animation.Def{Name: "hit", Frames: 2, Duration: 2, Type: animation.PlayOnce},
		animation.Def{Name: "die", Frames: 2, Duration: 4, Type: animation.PlayOnce},
	)
}

func testConfig() config.Config {
	return config.Config{
		Seed: 1,
		FPS:  10,
		Controls: config.Controls{
			MouseMove:         true,
			MouseMoveAttack:   true,
			MouseAim:          true,
			DeadzoneMoving:    0.5,
			DeadzoneNotMoving: 0.75,
			LowHPThreshold:    20,
			LowHPWarning:      config.LowHPWarnTextSound,
		},
		Pathing: config.Pathing{FailThreshold: 1, FailWaitSeconds: 2, Limit: 4096},
	}
}

type harness struct {
	av    *Avatar
	hero  *domain.Entity
	col   *systems.MapCollision
	in    *input.State
	gate  *fakeGate
	act   *recordingActivator
	world *testWorld
}

func newEntity(t enums.EntityType, serial uint64, name string, x, y int) *domain.Entity {
	stats := domain.NewStats(name, 40, 20, 0.1)
	stats.Pos = domain.Point{X: x, Y: y}.Center()
	stats.MeleeRange = domain.DefaultMeleeRange
	stats.ThreatRange = domain.DefaultThreatRange
	stats.Hero = t == enums.EntityTypePlayer
	return &domain.Entity{ID: types.PackEntityID(t, serial), Type: t, Stats: stats}
}

// newHarness собирает аватар в (5,5) на пустой карте 20x20.
func newHarness(t *testing.T, mutate func(*config.Config), withAnims bool) *harness {
	t.Helper()
	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	table, err := powers.NewTable(testPowers())
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	h := &harness{
		hero: newEntity(enums.EntityTypePlayer, 1, "Hero", 5, 5),
		col:  systems.NewMapCollision(20, 20),
		in:   &input.State{},
	}
	h.world = &testWorld{entities: []*domain.Entity{h.hero}, col: h.col}
	h.gate = &fakeGate{playerTurn: true, actions: 2, start: h.hero.Stats.Pos, moveRange: 6}
	h.act = &recordingActivator{exec: powers.NewExecutor(table, h.world, neverRoller{})}

	deps := Deps{
		Map:       h.col,
		Powers:    table,
		Activator: h.act,
		Gate:      h.gate,
		Roller:    neverRoller{},
		Input:     h.in,
		Config:    cfg,
	}
	if withAnims {
		deps.Animations = FromSet(testAnimations())
	}
	h.av = New(h.hero, deps)
	return h
}

func (h *harness) addEnemy(serial uint64, x, y int) *domain.Entity {
	e := newEntity(enums.EntityTypeEnemy, serial, "Goblin", x, y)
	h.world.entities = append(h.world.entities, e)
	h.col.Block(e.Stats.Pos.X, e.Stats.Pos.Y, false)
	return e
}

// runUntil крутит кадры, пока аватар не придёт в состояние st.
func (h *harness) runUntil(t *testing.T, st enums.EntityState, maxFrames int) {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		h.av.Logic()
		if h.av.State() == st {
			return
		}
	}
	t.Fatalf("state %v not reached in %d frames, got %v", st, maxFrames, h.av.State())
}

func pt(x, y int) domain.FPoint {
	return domain.Point{X: x, Y: y}.Center()
}
