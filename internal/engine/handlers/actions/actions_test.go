package actions

import (
	"encoding/json"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/internal/engine/handlers"
	"github.com/rcarvalhosa/flare-engine/internal/input"
	"github.com/rcarvalhosa/flare-engine/pkg/api"
)

type fakeControls struct {
	frames    []input.Frame
	canEnd    bool
	canRevive bool
	revivedAt *domain.FPoint
}

func (f *fakeControls) QueueInput(fr input.Frame) { f.frames = append(f.frames, fr) }
func (f *fakeControls) EndTurn() bool             { return f.canEnd }
func (f *fakeControls) Respawn(at *domain.FPoint) bool {
	f.revivedAt = at
	return f.canRevive
}

func TestToFrame(t *testing.T) {
	tests := []struct {
		name    string
		payload api.InputPayload
		keys    int
		wantErr bool
	}{
		{"empty", api.InputPayload{}, 0, false},
		{"keys and mouse", api.InputPayload{Pressed: []string{"up", "MAIN1"}, MouseX: 3, UsingMouse: true}, 2, false},
		{"unknown key", api.InputPayload{Pressed: []string{"JUMP"}}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ToFrame(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToFrame() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(f.Pressed) != tt.keys {
				t.Errorf("pressed = %d, want %d", len(f.Pressed), tt.keys)
			}
			if f.Mouse.X != tt.payload.MouseX || f.UsingMouse != tt.payload.UsingMouse {
				t.Errorf("mouse = %v using=%v", f.Mouse, f.UsingMouse)
			}
		})
	}
}

func TestHandleInput_QueuesFrame(t *testing.T) {
	ctl := &fakeControls{}
	h := handlers.WithPayload(HandleInput)

	raw, _ := json.Marshal(api.InputPayload{Pressed: []string{"LEFT"}})
	if _, err := h(handlers.Context{Controls: ctl}, raw); err != nil {
		t.Fatal(err)
	}
	if len(ctl.frames) != 1 || ctl.frames[0].Pressed[0] != input.KeyLeft {
		t.Errorf("frames = %+v", ctl.frames)
	}

	if _, err := h(handlers.Context{Controls: ctl}, json.RawMessage(`{"pressed":`)); err == nil {
		t.Error("malformed payload must be rejected")
	}
}

func TestHandleEndTurn(t *testing.T) {
	for _, canEnd := range []bool{true, false} {
		res, err := HandleEndTurn(handlers.Context{Controls: &fakeControls{canEnd: canEnd}})
		if err != nil {
			t.Fatal(err)
		}
		if (res.MsgType == "ERROR") == canEnd {
			t.Errorf("canEnd=%v gave %+v", canEnd, res)
		}
	}
}

func TestHandleRespawn(t *testing.T) {
	h := handlers.WithPayload(HandleRespawn)

	ctl := &fakeControls{canRevive: true}
	if _, err := h(handlers.Context{Controls: ctl}, nil); err != nil {
		t.Fatal(err)
	}
	if ctl.revivedAt != nil {
		t.Errorf("no point means level start, got %v", ctl.revivedAt)
	}

	if _, err := h(handlers.Context{Controls: ctl}, json.RawMessage(`{"x": 3.5, "y": 4.5}`)); err != nil {
		t.Fatal(err)
	}
	if ctl.revivedAt == nil || *ctl.revivedAt != (domain.FPoint{X: 3.5, Y: 4.5}) {
		t.Errorf("revived at %v", ctl.revivedAt)
	}

	if _, err := h(handlers.Context{Controls: ctl}, json.RawMessage(`{"x": 3.5}`)); err == nil {
		t.Error("half a point must fail validation")
	}
}

func TestHandleInit_RequestsResync(t *testing.T) {
	res, err := HandleInit(handlers.Context{})
	if err != nil || !res.Resync {
		t.Errorf("HandleInit = %+v, %v", res, err)
	}
}
