package enums

import "strings"

// MovementType влияет на то, какие тайлы считаются проходимыми.
type MovementType uint8

const (
	MovementNormal MovementType = iota
	MovementFlying
	MovementIntangible
)

var movementStringToType = map[string]MovementType{
	"NORMAL":     MovementNormal,
	"FLYING":     MovementFlying,
	"INTANGIBLE": MovementIntangible,
}

var movementTypeToString = map[MovementType]string{
	MovementNormal:     "NORMAL",
	MovementFlying:     "FLYING",
	MovementIntangible: "INTANGIBLE",
}

func (m MovementType) String() string {
	if val, ok := movementTypeToString[m]; ok {
		return val
	}
	return "UNKNOWN"
}

func ParseMovementType(s string) MovementType {
	if val, ok := movementStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return MovementNormal
}
