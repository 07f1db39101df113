package types

import (
	"fmt"
	"strconv"

	"github.com/rcarvalhosa/flare-engine/internal/core/types/enums"
)

// EntityID - 64-битный идентификатор сущности внутри сессии.
//
// Формат битов (от старших к младшим):
//
//	[ Type (8) | Serial (56) ]
//
// Где:
//   - Type - тип сущности (Player, Enemy, Ally ...)
//   - Serial - порядковый номер, выданный Allocator
//
// Идентификатор стабилен на всю жизнь сессии, поэтому по нему можно
// ссылаться на сущность из реплея и из debug-эндпоинтов.
type EntityID uint64

// NilEntityID - нулевой идентификатор, аналог nil.
const NilEntityID EntityID = 0

const (
	bitsSerial = 56
	bitsType   = 8

	shiftType = bitsSerial

	maskSerial = (1 << bitsSerial) - 1
	maskType   = (1 << bitsType) - 1
)

// PackEntityID собирает EntityID из типа и порядкового номера.
// Лишние старшие биты serial отбрасываются.
func PackEntityID(t enums.EntityType, serial uint64) EntityID {
	return EntityID((uint64(t) << shiftType) | (serial & maskSerial))
}

// Serial возвращает порядковый номер сущности.
func (id EntityID) Serial() uint64 {
	return uint64(id) & maskSerial
}

// Type возвращает тип сущности.
func (id EntityID) Type() enums.EntityType {
	return enums.EntityType((uint64(id) >> shiftType) & maskType)
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id EntityID) IsNil() bool {
	return id == NilEntityID
}

// String возвращает человекочитаемое представление, например "ENEMY#3".
func (id EntityID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", id.Type(), id.Serial())
}

// MarshalJSON сериализует EntityID в JSON как строку
// (JavaScript не умеет uint64 без потери точности).
func (id EntityID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON поддерживает как строковое, так и числовое представление.
func (id *EntityID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilEntityID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = EntityID(v)
	return nil
}

// Allocator выдаёт последовательные идентификаторы. Не потокобезопасен:
// принадлежит одной сессии и живёт в её горутине.
type Allocator struct {
	next uint64
}

// Next возвращает новый идентификатор. Serial начинается с 1,
// поэтому результат никогда не равен NilEntityID.
func (a *Allocator) Next(t enums.EntityType) EntityID {
	a.next++
	return PackEntityID(t, a.next)
}
