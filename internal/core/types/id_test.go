package types

import (
	"encoding/json"
	"testing"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
)

func TestPackEntityID(t *testing.T) {
	tests := []struct {
		name       string
		typ        enums.EntityType
		serial     uint64
		wantType   enums.EntityType
		wantSerial uint64
	}{
		{"Player first", enums.EntityTypePlayer, 1, enums.EntityTypePlayer, 1},
		{"Enemy big serial", enums.EntityTypeEnemy, 1 << 40, enums.EntityTypeEnemy, 1 << 40},
		{"Serial masked", enums.EntityTypeAlly, maskSerial + 2, enums.EntityTypeAlly, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.typ, tt.serial)
			if got := id.Type(); got != tt.wantType {
				t.Errorf("Type() = %v, want %v", got, tt.wantType)
			}
			if got := id.Serial(); got != tt.wantSerial {
				t.Errorf("Serial() = %v, want %v", got, tt.wantSerial)
			}
		})
	}
}

func TestEntityID_String(t *testing.T) {
	if got := NilEntityID.String(); got != "<nil>" {
		t.Errorf("nil String() = %q", got)
	}
	if got := PackEntityID(enums.EntityTypeEnemy, 3).String(); got != "ENEMY#3" {
		t.Errorf("String() = %q, want ENEMY#3", got)
	}
}

func TestEntityID_JSON(t *testing.T) {
	id := PackEntityID(enums.EntityTypePlayer, 7)

	data, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if data[0] != '"' {
		t.Fatalf("expected string encoding, got %s", data)
	}

	tests := []struct {
		name  string
		input string
		want  EntityID
	}{
		{"string form", string(data), id},
		{"numeric form", "42", EntityID(42)},
		{"empty string", `""`, NilEntityID},
		{"null", "null", NilEntityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got EntityID
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	var bad EntityID
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestAllocator_Next(t *testing.T) {
	var a Allocator

	first := a.Next(enums.EntityTypePlayer)
	second := a.Next(enums.EntityTypeEnemy)

	if first.IsNil() || second.IsNil() {
		t.Fatal("allocator must never return NilEntityID")
	}
	if first == second {
		t.Fatal("ids must be unique")
	}
	if second.Type() != enums.EntityTypeEnemy {
		t.Errorf("Type() = %v, want ENEMY", second.Type())
	}
}
