// Package input хранит покадровое состояние ввода: какие клавиши нажаты,
// какие заблокированы до отпускания, где курсор на карте.
package input

import (
	"strings"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyAimUp
	KeyAimDown
	KeyAimLeft
	KeyAimRight
	KeyMain1
	KeyMain2
	KeyShift
	KeyBar1
	KeyBar2
	KeyBar3
	KeyBar4
	KeyBar5
	KeyBar6
	KeyBar7
	KeyBar8
	KeyBar9
	KeyBar0
	KeyEndTurn

	KeyCount
)

var keyNames = [KeyCount]string{
	KeyUp:       "UP",
	KeyDown:     "DOWN",
	KeyLeft:     "LEFT",
	KeyRight:    "RIGHT",
	KeyAimUp:    "AIM_UP",
	KeyAimDown:  "AIM_DOWN",
	KeyAimLeft:  "AIM_LEFT",
	KeyAimRight: "AIM_RIGHT",
	KeyMain1:    "MAIN1",
	KeyMain2:    "MAIN2",
	KeyShift:    "SHIFT",
	KeyBar1:     "BAR_1",
	KeyBar2:     "BAR_2",
	KeyBar3:     "BAR_3",
	KeyBar4:     "BAR_4",
	KeyBar5:     "BAR_5",
	KeyBar6:     "BAR_6",
	KeyBar7:     "BAR_7",
	KeyBar8:     "BAR_8",
	KeyBar9:     "BAR_9",
	KeyBar0:     "BAR_0",
	KeyEndTurn:  "END_TURN",
}

func (k Key) String() string {
	if k < KeyCount {
		return keyNames[k]
	}
	return "UNKNOWN"
}

// ParseKey переводит имя клавиши из сетевого сообщения.
func ParseKey(name string) (Key, bool) {
	upper := strings.ToUpper(name)
	for k, n := range keyNames {
		if n == upper {
			return Key(k), true
		}
	}
	return KeyCount, false
}

// Frame - снимок ввода, пришедший от клиента.
type Frame struct {
	Pressed    []Key
	Mouse      domain.FPoint
	UsingMouse bool
	// OverUI - курсор над панелью действий или меню.
	OverUI bool
}

// State - состояние ввода на текущий кадр.
//
// Lock выставляет потребитель клавиши, чтобы удержание не срабатывало
// повторно; блок снимается отпусканием.
type State struct {
	Pressing [KeyCount]bool
	Lock     [KeyCount]bool

	Mouse      domain.FPoint
	UsingMouse bool
	OverUI     bool
}

// Apply заменяет состояние клавиш снимком. Отпущенные клавиши теряют блок.
func (s *State) Apply(f Frame) {
	var next [KeyCount]bool
	for _, k := range f.Pressed {
		if k < KeyCount {
			next[k] = true
		}
	}
	for k := range next {
		if !next[k] {
			s.Lock[k] = false
		}
	}
	s.Pressing = next
	s.Mouse = f.Mouse
	s.UsingMouse = f.UsingMouse
	s.OverUI = f.OverUI
}

// Press нажимает клавишу (для тестов и бота).
func (s *State) Press(k Key) {
	s.Pressing[k] = true
}

// Release отпускает клавишу и снимает блок.
func (s *State) Release(k Key) {
	s.Pressing[k] = false
	s.Lock[k] = false
}

// Held - нажата и не заблокирована.
func (s *State) Held(k Key) bool {
	return s.Pressing[k] && !s.Lock[k]
}

// ReleaseAll отпускает всё, например при смене карты.
func (s *State) ReleaseAll() {
	s.Pressing = [KeyCount]bool{}
	s.Lock = [KeyCount]bool{}
}
