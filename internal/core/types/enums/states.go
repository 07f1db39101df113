package enums

import "strings"

// EntityState - основное состояние управляемого персонажа.
// Меняется только внутри покадровой логики владельца.
type EntityState uint8

const (
	StateStance EntityState = iota
	StateMove
	StatePower
	StateBlock
	StateHit
	StateDead
)

var entityStateToString = map[EntityState]string{
	StateStance: "STANCE",
	StateMove:   "MOVE",
	StatePower:  "POWER",
	StateBlock:  "BLOCK",
	StateHit:    "HIT",
	StateDead:   "DEAD",
}

var entityStateStringToState = map[string]EntityState{
	"STANCE": StateStance,
	"MOVE":   StateMove,
	"POWER":  StatePower,
	"BLOCK":  StateBlock,
	"HIT":    StateHit,
	"DEAD":   StateDead,
}

func (s EntityState) String() string {
	if val, ok := entityStateToString[s]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityState возвращает StateStance для неизвестных строк.
func ParseEntityState(s string) EntityState {
	if val, ok := entityStateStringToState[strings.ToUpper(s)]; ok {
		return val
	}
	return StateStance
}

// MarshalText нужен, чтобы состояние попадало в JSON снапшоты строкой.
func (s EntityState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
