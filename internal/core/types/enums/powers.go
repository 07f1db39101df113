package enums

import "strings"

// PowerType - способ исполнения способности.
type PowerType uint8

const (
	PowerTypeFixed PowerType = iota
	PowerTypeMissile
	PowerTypeRepeater
	PowerTypeSpawn
	PowerTypeBlock
)

var powerTypeStringToType = map[string]PowerType{
	"FIXED":    PowerTypeFixed,
	"MISSILE":  PowerTypeMissile,
	"REPEATER": PowerTypeRepeater,
	"SPAWN":    PowerTypeSpawn,
	"BLOCK":    PowerTypeBlock,
}

var powerTypeToString = map[PowerType]string{
	PowerTypeFixed:    "FIXED",
	PowerTypeMissile:  "MISSILE",
	PowerTypeRepeater: "REPEATER",
	PowerTypeSpawn:    "SPAWN",
	PowerTypeBlock:    "BLOCK",
}

func (p PowerType) String() string {
	if val, ok := powerTypeToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParsePowerType возвращает ok=false для неизвестного типа, чтобы загрузчик мог отбросить запись.
func ParsePowerType(s string) (PowerType, bool) {
	val, ok := powerTypeStringToType[strings.ToUpper(s)]
	return val, ok
}

// PowerState - что происходит с персонажем при использовании способности.
type PowerState uint8

const (
	// PowerStateNone - способность без собственного состояния (блок).
	PowerStateNone PowerState = iota
	// PowerStateInstant - срабатывает сразу, без анимации атаки.
	PowerStateInstant
	// PowerStateAttack - проигрывает анимацию атаки (состояние POWER).
	PowerStateAttack
)

func ParsePowerState(s string) PowerState {
	switch strings.ToLower(s) {
	case "instant":
		return PowerStateInstant
	case "attack":
		return PowerStateAttack
	default:
		return PowerStateNone
	}
}

// StartingPos - откуда появляется эффект способности.
type StartingPos uint8

const (
	StartingPosSource StartingPos = iota
	StartingPosTarget
	StartingPosMelee
)

func ParseStartingPos(s string) StartingPos {
	switch strings.ToUpper(s) {
	case "TARGET":
		return StartingPosTarget
	case "MELEE":
		return StartingPosMelee
	default:
		return StartingPosSource
	}
}
