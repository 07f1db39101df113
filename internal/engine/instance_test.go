package engine

import (
	"encoding/json"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/network"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
)

func inputCommand(t *testing.T, keys ...string) api.ClientCommand {
	t.Helper()
	raw, err := json.Marshal(api.InputPayload{Pressed: keys})
	if err != nil {
		t.Fatal(err)
	}
	return api.ClientCommand{Token: "tester", Action: "INPUT", Payload: raw}
}

func TestInstance_ProcessCommand(t *testing.T) {
	cfg := testConfig()
	inst := NewInstance(NewSandbox(cfg, loadContent(t, cfg.FPS)), nil)

	tests := []struct {
		name    string
		cmd     api.ClientCommand
		wantErr bool
	}{
		{"input", inputCommand(t, "UP"), false},
		{"lowercase action", api.ClientCommand{Action: "end_turn"}, false},
		{"unknown action", api.ClientCommand{Action: "FLY"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := inst.ProcessCommand(tt.cmd)
			if (err != nil) != tt.wantErr {
				t.Errorf("ProcessCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstance_RecordsOnlyAcceptedCommands(t *testing.T) {
	cfg := testConfig()
	inst := NewInstance(NewSandbox(cfg, loadContent(t, cfg.FPS)), nil)

	_ = inst.ProcessCommand(api.ClientCommand{Action: "INIT", Token: "tester"})
	_ = inst.ProcessCommand(inputCommand(t, "RIGHT"))
	_ = inst.ProcessCommand(inputCommand(t, "NOT_A_KEY"))
	inst.Step()

	rec := inst.ReplaySnapshot()
	if len(rec.Actions) != 1 {
		t.Fatalf("recorded %d actions, want 1", len(rec.Actions))
	}
	if rec.Actions[0].Action != domain.ActionInput || rec.Actions[0].Tick != 0 {
		t.Errorf("recorded %v at tick %d", rec.Actions[0].Action, rec.Actions[0].Tick)
	}
	if rec.Seed != cfg.Seed || rec.FPS != cfg.FPS {
		t.Errorf("replay header seed=%d fps=%d", rec.Seed, rec.FPS)
	}
}

func TestInstance_PublishesSnapshots(t *testing.T) {
	cfg := testConfig()
	hub := network.NewBroadcaster()
	inst := NewInstance(NewSandbox(cfg, loadContent(t, cfg.FPS)), hub)
	ch := hub.Register("tester")

	_ = inst.ProcessCommand(api.ClientCommand{Action: "INIT", Token: "tester"})
	inst.Step()

	update := <-ch
	if update.Type != SnapshotUpdate || update.Map != nil {
		t.Errorf("first message type = %s, map tiles = %d", update.Type, len(update.Map))
	}
	init := <-ch
	if init.Type != SnapshotInit || len(init.Map) == 0 {
		t.Fatalf("resync message type = %s, map tiles = %d", init.Type, len(init.Map))
	}
	if init.MyEntityID == "" || len(init.Entities) == 0 || init.ActionBar == nil {
		t.Error("INIT snapshot is missing the avatar, entities or action bar")
	}
	if init.Tick != 1 {
		t.Errorf("tick = %d, want 1", init.Tick)
	}
}

func TestPlayback_ReproducesSession(t *testing.T) {
	cfg := testConfig()
	c := loadContent(t, cfg.FPS)
	inst := NewInstance(NewSandbox(cfg, c), nil)

	script := map[int][]string{
		0:  {"RIGHT"},
		20: {"DOWN", "RIGHT"},
		45: {},
		60: {"LEFT"},
		90: {},
	}
	const total = 150
	for tick := 0; tick < total; tick++ {
		if keys, ok := script[tick]; ok {
			if err := inst.ProcessCommand(inputCommand(t, keys...)); err != nil {
				t.Fatal(err)
			}
		}
		inst.Step()
	}

	rec := inst.ReplaySnapshot()
	last := rec.Actions[len(rec.Actions)-1].Tick
	replayed := Playback(cfg, c, rec, total-last-1)

	if replayed.CurrentTick() != total {
		t.Fatalf("replay stopped at tick %d, want %d", replayed.CurrentTick(), total)
	}
	live := inst.session.Entities()
	again := replayed.Entities()
	if len(live) != len(again) {
		t.Fatalf("entities: live %d, replay %d", len(live), len(again))
	}
	for i := range live {
		a, b := live[i].Stats, again[i].Stats
		if a.Pos != b.Pos || a.HP != b.HP || a.CurState != b.CurState {
			t.Errorf("%s diverged: live %v hp=%d %v, replay %v hp=%d %v",
				a.Name, a.Pos, a.HP, a.CurState, b.Pos, b.HP, b.CurState)
		}
	}
}
