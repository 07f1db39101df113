package enums

import "strings"

type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypePlayer
	EntityTypeEnemy
	EntityTypeAlly
	EntityTypeObject
)

var entityTypeToString = map[EntityType]string{
	EntityTypePlayer: "PLAYER",
	EntityTypeEnemy:  "ENEMY",
	EntityTypeAlly:   "ALLY",
	EntityTypeObject: "OBJECT",
}

var entityTypeStringToType = map[string]EntityType{
	"PLAYER": EntityTypePlayer,
	"ENEMY":  EntityTypeEnemy,
	"ALLY":   EntityTypeAlly,
	"OBJECT": EntityTypeObject,
}

// String возвращает строковое представление (для логов и дебага)
func (e EntityType) String() string {
	if val, ok := entityTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseEntityType конвертирует строку в Enum (нужно для загрузки шаблонов/конфигов)
func ParseEntityType(s string) EntityType {
	upper := strings.ToUpper(s)
	if val, ok := entityTypeStringToType[upper]; ok {
		return val
	}
	return EntityTypeUnknown
}
