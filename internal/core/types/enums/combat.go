package enums

import "strings"

// CombatState - фаза боевой сессии.
type CombatState uint8

const (
	CombatInactive CombatState = iota
	CombatTransitioning
	CombatActive
)

var combatStateToString = map[CombatState]string{
	CombatInactive:      "inactive",
	CombatTransitioning: "transitioning",
	CombatActive:        "active",
}

var combatStringToState = map[string]CombatState{
	"inactive":      CombatInactive,
	"transitioning": CombatTransitioning,
	"active":        CombatActive,
}

func (c CombatState) String() string {
	if val, ok := combatStateToString[c]; ok {
		return val
	}
	return "unknown"
}

// ParseCombatState используется для перевода состояния FSM обратно в enum.
func ParseCombatState(s string) CombatState {
	if val, ok := combatStringToState[strings.ToLower(s)]; ok {
		return val
	}
	return CombatInactive
}

func (c CombatState) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// TurnAction - последнее действие, совершённое в текущем ходу.
type TurnAction uint8

const (
	TurnActionNone TurnAction = iota
	TurnActionMove
	TurnActionPower
	TurnActionItem
)

var turnActionToString = map[TurnAction]string{
	TurnActionNone:  "NONE",
	TurnActionMove:  "MOVE",
	TurnActionPower: "POWER",
	TurnActionItem:  "ITEM",
}

func (a TurnAction) String() string {
	if val, ok := turnActionToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

func (a TurnAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// CombatStyle определяет, втягивается ли сущность в бой сама.
type CombatStyle uint8

const (
	CombatStyleDefault CombatStyle = iota
	CombatStyleAggressive
	CombatStylePassive
)

var combatStyleStringToStyle = map[string]CombatStyle{
	"DEFAULT":    CombatStyleDefault,
	"AGGRESSIVE": CombatStyleAggressive,
	"PASSIVE":    CombatStylePassive,
}

// ParseCombatStyle конвертирует значение из контента.
func ParseCombatStyle(s string) CombatStyle {
	if val, ok := combatStyleStringToStyle[strings.ToUpper(s)]; ok {
		return val
	}
	return CombatStyleDefault
}
