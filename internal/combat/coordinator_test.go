package combat

import (
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/systems"
)

func TestCoordinator_InitiativeOrder(t *testing.T) {
	f := newFixture(7, 15)
	goblin := f.addEnemy("Goblin", 5, 7)

	if !f.c.EnterCombat(f.hero, goblin) {
		t.Fatal("EnterCombat returned false")
	}
	f.activate(t)

	order := f.c.InitiativeOrder()
	if len(order) != 2 {
		t.Fatalf("order length = %d, want 2", len(order))
	}
	if order[0].Entity != goblin || order[0].Roll != 15 {
		t.Errorf("first = %s(%d), want Goblin(15)", order[0].Entity.Stats.Name, order[0].Roll)
	}
	if order[1].Entity != f.hero || order[1].Roll != 7 {
		t.Errorf("second = %s(%d), want Hero(7)", order[1].Entity.Stats.Name, order[1].Roll)
	}
	if f.c.CurrentTurnEntity() != goblin {
		t.Error("first turn must belong to the higher roll")
	}
	if f.c.CurrentRound() != 1 {
		t.Errorf("round = %d, want 1", f.c.CurrentRound())
	}
}

func TestCoordinator_InitiativeAddsSpeed(t *testing.T) {
	f := newFixture(10, 10)
	goblin := f.addEnemy("Goblin", 5, 7)
	goblin.Stats.Speed = 2.7

	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	order := f.c.InitiativeOrder()
	if order[0].Entity != goblin || order[0].Roll != 12 {
		t.Errorf("first = %s(%d), want Goblin(12)", order[0].Entity.Stats.Name, order[0].Roll)
	}
}

func TestCoordinator_TiesKeepJoinOrder(t *testing.T) {
	f := newFixture(9, 9)
	goblin := f.addEnemy("Goblin", 5, 7)

	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	if f.c.CurrentTurnEntity() != f.hero {
		t.Error("on a tie the earlier participant goes first")
	}
}

func TestCoordinator_TransitionDuration(t *testing.T) {
	f := newFixture()
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)

	for i := 0; i < 9; i++ {
		f.c.Logic()
		if !f.c.IsTransitioning() {
			t.Fatalf("activated after %d frames, want 10", i+1)
		}
	}
	f.c.Logic()
	if f.c.State() != enums.CombatActive {
		t.Errorf("state = %v after 10 frames, want active", f.c.State())
	}
	if f.c.CurrentTurnEntity() == nil {
		t.Error("no current entity after activation")
	}
}

func TestCoordinator_EnterCombatJoinRules(t *testing.T) {
	f := newFixture()
	goblin := f.addEnemy("Goblin", 5, 7)
	near := f.addEnemy("Near", 7, 7)
	far := f.addEnemy("Far", 15, 15)
	hidden := f.addEnemy("Hidden", 5, 10)
	dead := f.addEnemy("Dead", 6, 7)
	dead.Stats.HP = 0
	ally := newEntity(enums.EntityTypeAlly, "Ally", 4, 7)
	f.world.entities = append(f.world.entities, ally)

	// Стена между Hidden и целью
	f.world.col.SetTile(5, 8, systems.TileWall)
	f.world.col.SetTile(5, 9, systems.TileWall)

	if !f.c.EnterCombat(f.hero, goblin) {
		t.Fatal("EnterCombat returned false")
	}

	tests := []struct {
		name string
		e    *domain.Entity
		want bool
	}{
		{"initiator", f.hero, true},
		{"target", goblin, true},
		{"in threat range", near, true},
		{"out of threat range", far, false},
		{"no line of sight", hidden, false},
		{"dead", dead, false},
		{"ally", ally, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Stats.InCombat(); got != tt.want {
				t.Errorf("InCombat() = %v, want %v", got, tt.want)
			}
		})
	}

	if len(f.c.Participants()) != 3 {
		t.Errorf("participants = %d, want 3", len(f.c.Participants()))
	}
	if f.c.EnterCombat(f.hero, far) {
		t.Error("EnterCombat must be rejected while already in combat")
	}
}

func TestCoordinator_PruneAndExitSameTick(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)
	f.c.TakeMessages()

	goblin.Stats.HP = 0
	f.c.Logic()

	if f.c.State() != enums.CombatInactive {
		t.Fatalf("state = %v, want inactive in the same tick", f.c.State())
	}
	if goblin.Stats.InCombat() || f.hero.Stats.InCombat() {
		t.Error("combat flags must be cleared")
	}
	if len(f.c.Participants()) != 0 {
		t.Error("participants must be empty after exit")
	}
	if countMessages(f.c.TakeMessages(), "Combat ended.") != 1 {
		t.Error("expected exactly one end message")
	}
}

func TestCoordinator_ExitWhenPlayerDies(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	f.hero.Stats.HP = 0
	f.c.Logic()

	if f.c.IsInCombat() {
		t.Error("combat must end when the player is no longer a participant")
	}
}

func TestCoordinator_ActionEconomy(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	if !f.c.IsPlayerTurn() {
		t.Fatal("expected player turn")
	}
	if got := f.c.TurnState().ActionsRemaining; got != 2 {
		t.Fatalf("actions = %d, want 2", got)
	}

	f.c.PerformAction(enums.TurnActionMove)
	if !f.c.IsPlayerTurn() || f.c.TurnState().ActionsRemaining != 1 {
		t.Fatal("first action must not end the turn")
	}
	if f.c.TurnState().LastAction != enums.TurnActionMove {
		t.Errorf("last action = %v, want MOVE", f.c.TurnState().LastAction)
	}

	f.c.SpendAction()
	if f.c.CurrentTurnEntity() != goblin {
		t.Fatal("last action must pass the turn")
	}
	if f.c.TurnIndex() != 1 || f.c.CurrentRound() != 1 {
		t.Errorf("index %d round %d, want exactly one advance", f.c.TurnIndex(), f.c.CurrentRound())
	}
	if f.c.TurnState().ActionsRemaining != 2 {
		t.Error("new turn must start with a full action budget")
	}
	if f.c.CanTakeAction() {
		t.Error("player cannot act outside their turn")
	}
}

func TestCoordinator_RoundWraps(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	f.c.NextTurn()
	f.c.NextTurn()
	if !f.c.IsPlayerTurn() {
		t.Error("turn must wrap to the first entity")
	}
	if f.c.CurrentRound() != 2 {
		t.Errorf("round = %d, want 2", f.c.CurrentRound())
	}
}

func TestCoordinator_EndPlayerTurn(t *testing.T) {
	f := newFixture(7, 15)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	f.c.EndPlayerTurn()
	if f.c.CurrentTurnEntity() != goblin {
		t.Error("EndPlayerTurn must not act on an NPC turn")
	}

	f.c.NextTurn()
	if !f.c.CanEndTurn() {
		t.Fatal("player should be able to end their turn")
	}
	f.c.EndPlayerTurn()
	if f.c.CurrentTurnEntity() != goblin {
		t.Error("turn must pass to the goblin")
	}
}

func TestCoordinator_PruneKeepsIndexValid(t *testing.T) {
	t.Run("current dies", func(t *testing.T) {
		f := newFixture(5, 15, 10)
		first := f.addEnemy("First", 5, 7)
		second := f.addEnemy("Second", 7, 5)
		f.c.EnterCombat(f.hero, first)
		f.activate(t)

		if f.c.CurrentTurnEntity() != first {
			t.Fatal("expected First to act first")
		}
		first.Stats.HP = 0
		f.c.Logic()

		if f.c.CurrentTurnEntity() != second {
			t.Errorf("current = %v, want Second", f.c.CurrentTurnEntity())
		}
		if f.c.TurnState().ActionsRemaining != 2 {
			t.Error("the next entity must get a fresh turn")
		}
	})

	t.Run("earlier entity dies", func(t *testing.T) {
		f := newFixture(5, 15, 10)
		first := f.addEnemy("First", 5, 7)
		f.addEnemy("Second", 7, 5)
		f.c.EnterCombat(f.hero, first)
		f.activate(t)

		f.c.NextTurn()
		f.c.NextTurn()
		if !f.c.IsPlayerTurn() {
			t.Fatal("expected player turn")
		}
		first.Stats.HP = 0
		f.c.Logic()

		if !f.c.IsPlayerTurn() {
			t.Error("current entity must survive the prune")
		}
		if f.c.TurnIndex() != 1 {
			t.Errorf("index = %d, want 1", f.c.TurnIndex())
		}
	})

	t.Run("last entity dies on its turn", func(t *testing.T) {
		f := newFixture(15, 10, 5)
		first := f.addEnemy("First", 5, 7)
		second := f.addEnemy("Second", 7, 5)
		f.c.EnterCombat(f.hero, first)
		f.activate(t)

		f.c.NextTurn()
		f.c.NextTurn()
		if f.c.CurrentTurnEntity() != second {
			t.Fatal("expected Second's turn")
		}
		second.Stats.HP = 0
		f.c.Logic()

		if !f.c.IsPlayerTurn() {
			t.Error("turn must wrap to the first entity")
		}
		if f.c.CurrentRound() != 2 {
			t.Errorf("round = %d, want 2", f.c.CurrentRound())
		}
	})
}

func TestCoordinator_IsValidMovement(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 8)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)
	f.world.col.SetTile(5, 2, systems.TileWall)

	tests := []struct {
		name string
		dest domain.FPoint
		want bool
	}{
		{"within range", pt(8, 5), true},
		{"exactly range", pt(11, 5), true},
		{"beyond range", pt(14, 5), false},
		{"wall in the way", pt(5, 1), false},
		{"into wall", pt(5, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.c.IsValidMovement(tt.dest); got != tt.want {
				t.Errorf("IsValidMovement(%v) = %v, want %v", tt.dest, got, tt.want)
			}
		})
	}
}

func TestCoordinator_MovementMeasuredFromTurnStart(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 8)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	f.hero.Stats.Pos = pt(9, 5)
	if f.c.IsValidMovement(pt(13, 5)) {
		t.Error("range is measured from where the turn started")
	}

	f.c.NextTurn()
	if f.c.IsValidMovement(pt(8, 5)) {
		t.Error("movement is invalid outside the player turn")
	}
	if !f.c.IsValidMovementFor(goblin, pt(5, 11)) {
		t.Error("NPC movement within range should be valid on its turn")
	}
}

func TestCoordinator_ExitIsIdempotent(t *testing.T) {
	f := newFixture()
	goblin := f.addEnemy("Goblin", 5, 7)

	f.c.ExitCombat()
	if len(f.c.TakeMessages()) != 0 {
		t.Error("exit from inactive combat must be silent")
	}

	f.c.EnterCombat(f.hero, goblin)
	f.c.ExitCombat()
	f.c.ExitCombat()

	if countMessages(f.c.TakeMessages(), "Combat ended.") != 1 {
		t.Error("expected one end message")
	}
	if f.c.State() != enums.CombatInactive {
		t.Error("expected inactive state")
	}
}

func TestCoordinator_AddCombatantKeepsCurrent(t *testing.T) {
	f := newFixture(15, 7, 20)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)
	f.c.NextTurn()

	orc := f.addEnemy("Orc", 12, 12)
	if !f.c.AddCombatant(orc) {
		t.Fatal("AddCombatant returned false")
	}
	if f.c.AddCombatant(orc) {
		t.Error("duplicate combatant must be rejected")
	}

	order := f.c.InitiativeOrder()
	if order[0].Entity != orc {
		t.Errorf("newcomer with the top roll should lead the order")
	}
	if f.c.CurrentTurnEntity() != goblin {
		t.Error("current turn must stay with the goblin")
	}
	if !orc.Stats.InCombat() {
		t.Error("newcomer must be flagged as in combat")
	}
}

func TestCoordinator_AddCombatantOutsideCombat(t *testing.T) {
	f := newFixture()
	orc := f.addEnemy("Orc", 6, 6)
	if f.c.AddCombatant(orc) {
		t.Error("AddCombatant must be rejected while inactive")
	}
}

func TestCoordinator_NPCTurn(t *testing.T) {
	f := newFixture(7, 15)
	goblin := f.addEnemy("Goblin", 5, 7)
	calls := 0
	goblin.Behavior = domain.BehaviorFunc(func(e *domain.Entity) {
		calls++
		f.c.PerformAction(enums.TurnActionPower)
	})

	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	f.c.Logic()
	f.c.Logic()
	if calls != 2 {
		t.Errorf("goblin logic called %d times, want 2", calls)
	}
	if !f.c.IsPlayerTurn() {
		t.Error("turn must pass to the player after the goblin spends its actions")
	}

	f.c.Logic()
	if calls != 2 {
		t.Error("NPC logic must not run on the player turn")
	}
}

func TestCoordinator_TurnWatchdog(t *testing.T) {
	f := newFixture(7, 15)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	for i := 0; i < 4; i++ {
		f.c.Logic()
	}
	if f.c.CurrentTurnEntity() != goblin {
		t.Fatal("turn forfeited too early")
	}
	f.c.Logic()
	if !f.c.IsPlayerTurn() {
		t.Error("stalled NPC turn must be forfeited")
	}
}

func TestCoordinator_CheckCombatState(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		style  enums.CombatStyle
		engage bool
	}{
		{"close enemy", 5, 7, enums.CombatStyleDefault, true},
		{"far enemy", 5, 12, enums.CombatStyleDefault, false},
		{"passive enemy", 5, 7, enums.CombatStylePassive, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			e := f.addEnemy("Goblin", tt.x, tt.y)
			e.Stats.CombatStyle = tt.style

			f.c.CheckCombatState(f.hero, e)
			if got := f.c.IsInCombat(); got != tt.engage {
				t.Errorf("IsInCombat() = %v, want %v", got, tt.engage)
			}
		})
	}
}

func TestGate_CanMove(t *testing.T) {
	f := newFixture(7, 15)
	goblin := f.addEnemy("Goblin", 5, 7)
	bystander := f.addEnemy("Bystander", 15, 15)
	gate := f.c.Gate()

	if !gate.CanMove(f.hero) {
		t.Error("movement is free outside combat")
	}

	f.c.EnterCombat(f.hero, goblin)
	if gate.CanMove(goblin) || gate.CanMove(f.hero) {
		t.Error("nobody moves while combat is transitioning")
	}
	f.activate(t)

	if !gate.CanMove(goblin) {
		t.Error("current entity should move")
	}
	if gate.CanMove(f.hero) {
		t.Error("player must wait for their turn")
	}
	if !gate.CanMove(bystander) {
		t.Error("entities outside combat move freely")
	}
}

func TestCoordinator_DebugDump(t *testing.T) {
	f := newFixture(15, 7)
	goblin := f.addEnemy("Goblin", 5, 7)
	f.c.EnterCombat(f.hero, goblin)
	f.activate(t)

	dump := f.c.DebugDump()
	if dump["state"] != enums.CombatActive {
		t.Errorf("state = %v, want active", dump["state"])
	}
	order, ok := dump["order"].([]map[string]interface{})
	if !ok || len(order) != 2 {
		t.Fatalf("order = %#v", dump["order"])
	}
	if order[0]["current"] != true || order[0]["name"] != "Hero" {
		t.Errorf("first entry = %v", order[0])
	}
}
