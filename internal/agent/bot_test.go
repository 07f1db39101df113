package agent

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rcarvalhosa/flare-engine/internal/network"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init(logger.Options{})
	os.Exit(m.Run())
}

type recorder struct {
	mu   sync.Mutex
	cmds []api.ClientCommand
}

func (r *recorder) ProcessCommand(cmd api.ClientCommand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.cmds))
	for i, c := range r.cmds {
		out[i] = c.Action
	}
	return out
}

func hero(dead bool) api.EntityView {
	return api.EntityView{
		ID:    "hero",
		Type:  "PLAYER",
		Pos:   api.PointView{X: 5.5, Y: 5.5},
		Stats: &api.StatsView{HP: 10, MaxHP: 10, IsDead: dead},
	}
}

func enemy(id string, x, y float64) api.EntityView {
	return api.EntityView{
		ID:    id,
		Type:  "ENEMY",
		Pos:   api.PointView{X: x, Y: y},
		Stats: &api.StatsView{HP: 5, MaxHP: 5},
	}
}

func snapshot(tick int, ents ...api.EntityView) api.ServerResponse {
	return api.ServerResponse{Type: "UPDATE", Tick: tick, MyEntityID: "hero", Entities: ents}
}

func heroTurn(s api.ServerResponse, actions int) api.ServerResponse {
	s.Combat = &api.CombatView{State: "active", ActiveEntityID: "hero", ActionsRemaining: actions}
	return s
}

func TestBot_Decide(t *testing.T) {
	corpse := enemy("dead", 6.5, 5.5)
	corpse.Corpse = true

	tests := []struct {
		name       string
		state      api.ServerResponse
		wantOK     bool
		wantAction string
		wantMouse  *api.PointView
	}{
		{"NoHero", api.ServerResponse{MyEntityID: "hero"}, false, "", nil},
		{"DeadHeroRespawns", snapshot(1, hero(true)), true, "RESPAWN", nil},
		{"NearestEnemy", snapshot(1, hero(false), enemy("far", 10.5, 10.5), enemy("near", 7.5, 5.5)), true, "INPUT", &api.PointView{X: 7.5, Y: 5.5}},
		{"CorpsesIgnored", snapshot(1, hero(false), corpse), true, "INPUT", &api.PointView{}},
		{"TurnWithoutTargets", heroTurn(snapshot(1, hero(false)), 2), true, "END_TURN", nil},
		{"TurnSpent", heroTurn(snapshot(1, hero(false), enemy("e", 6.5, 5.5)), 0), true, "END_TURN", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBot("bot", &recorder{}, network.NewBroadcaster())
			cmd, ok := b.Decide(tt.state)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd.Action != tt.wantAction {
				t.Fatalf("action = %s, want %s", cmd.Action, tt.wantAction)
			}
			if tt.wantMouse == nil {
				return
			}
			var p api.InputPayload
			if err := json.Unmarshal(cmd.Payload, &p); err != nil {
				t.Fatal(err)
			}
			if p.MouseX != tt.wantMouse.X || p.MouseY != tt.wantMouse.Y {
				t.Errorf("mouse = (%v,%v), want %v", p.MouseX, p.MouseY, *tt.wantMouse)
			}
		})
	}
}

func TestBot_RepeatedInputSuppressed(t *testing.T) {
	b := NewBot("bot", &recorder{}, network.NewBroadcaster())
	s := snapshot(1, hero(false), enemy("e", 7.5, 5.5))

	if _, ok := b.Decide(s); !ok {
		t.Fatal("first snapshot must produce a command")
	}
	s.Tick = 2
	if _, ok := b.Decide(s); ok {
		t.Error("same target must not resend input")
	}
}

func TestBot_EndsStalledTurn(t *testing.T) {
	b := NewBot("bot", &recorder{}, network.NewBroadcaster())
	ents := []api.EntityView{hero(false), enemy("e", 9.5, 9.5)}

	cmd, ok := b.Decide(heroTurn(snapshot(10, ents...), 2))
	if !ok || cmd.Action != "INPUT" {
		t.Fatalf("turn start: got %v %q, want INPUT", ok, cmd.Action)
	}
	if _, ok := b.Decide(heroTurn(snapshot(10+patienceTicks, ents...), 2)); ok {
		t.Fatal("bot must wait while patience lasts")
	}
	cmd, ok = b.Decide(heroTurn(snapshot(11+patienceTicks, ents...), 2))
	if !ok || cmd.Action != "END_TURN" {
		t.Errorf("stalled turn: got %v %q, want END_TURN", ok, cmd.Action)
	}
}

func TestBot_Run(t *testing.T) {
	hub := network.NewBroadcaster()
	rec := &recorder{}
	b := NewBot("bot", rec, hub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for !hub.HasSubscriber("bot") {
		if time.Now().After(deadline) {
			t.Fatal("bot never subscribed")
		}
		time.Sleep(time.Millisecond)
	}
	hub.SendTo("bot", snapshot(1, hero(true)))

	for len(rec.actions()) < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("commands = %v, want INIT and RESPAWN", rec.actions())
		}
		time.Sleep(time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run() = %v", err)
	}

	got := rec.actions()
	if got[0] != "INIT" || got[1] != "RESPAWN" {
		t.Errorf("commands = %v", got)
	}
	if hub.HasSubscriber("bot") {
		t.Error("bot must unsubscribe on exit")
	}
}
