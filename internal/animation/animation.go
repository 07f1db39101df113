// Package animation хранит определения анимаций и проигрывает их покадрово.
// Рендера здесь нет: симуляции нужны только номер кадра, активный кадр
// и число проигрываний.
package animation

import (
	"fmt"
	"math"
	"strings"
)

// PlaybackType - как анимация ведёт себя по достижении последнего кадра.
type PlaybackType uint8

const (
	// PlayOnce останавливается на последнем кадре.
	PlayOnce PlaybackType = iota
	// Looped начинает сначала.
	Looped
	// BackForth проигрывается вперёд, затем назад.
	BackForth
)

var playbackStringToType = map[string]PlaybackType{
	"PLAY_ONCE":  PlayOnce,
	"LOOPED":     Looped,
	"BACK_FORTH": BackForth,
}

// ParsePlaybackType конвертирует значение из контента.
func ParsePlaybackType(s string) (PlaybackType, error) {
	if val, ok := playbackStringToType[strings.ToUpper(s)]; ok {
		return val, nil
	}
	return PlayOnce, fmt.Errorf("unknown playback type %q", s)
}

func (p PlaybackType) String() string {
	switch p {
	case Looped:
		return "LOOPED"
	case BackForth:
		return "BACK_FORTH"
	default:
		return "PLAY_ONCE"
	}
}

// Def - описание анимации. Duration - длительность одного проигрывания в тиках.
type Def struct {
	Name        string
	Frames      int
	Duration    int
	ActiveFrame int
	Type        PlaybackType
}

// Animation - проигрываемый экземпляр Def.
type Animation struct {
	def Def

	// duration с учётом скорости
	duration    int
	tick        int
	reverse     bool
	timesPlayed int
}

// New создаёт экземпляр с первого кадра.
func New(def Def) *Animation {
	if def.Frames < 1 {
		def.Frames = 1
	}
	if def.Duration < def.Frames {
		def.Duration = def.Frames
	}
	if def.ActiveFrame < 0 || def.ActiveFrame >= def.Frames {
		def.ActiveFrame = def.Frames - 1
	}
	return &Animation{def: def, duration: def.Duration}
}

func (a *Animation) Name() string { return a.def.Name }

// Duration - длительность одного проигрывания в тиках с учётом скорости.
func (a *Animation) Duration() int { return a.duration }

func (a *Animation) TimesPlayed() int { return a.timesPlayed }

// Frame - индекс текущего кадра.
func (a *Animation) Frame() int {
	return a.frameAt(a.tick)
}

func (a *Animation) frameAt(tick int) int {
	f := tick * a.def.Frames / a.duration
	if f >= a.def.Frames {
		f = a.def.Frames - 1
	}
	return f
}

func (a *Animation) lastTick() int {
	return a.duration - 1
}

// AdvanceFrame продвигает анимацию на один тик.
func (a *Animation) AdvanceFrame() {
	switch a.def.Type {
	case PlayOnce:
		if a.tick < a.lastTick() {
			a.tick++
		} else {
			a.timesPlayed = 1
		}
	case Looped:
		if a.tick < a.lastTick() {
			a.tick++
		} else {
			a.tick = 0
			a.timesPlayed++
		}
	case BackForth:
		if !a.reverse {
			if a.tick < a.lastTick() {
				a.tick++
			} else {
				a.reverse = true
			}
		} else {
			if a.tick > 0 {
				a.tick--
			} else {
				a.reverse = false
				a.timesPlayed++
			}
		}
	}
}

func (a *Animation) IsFirstFrame() bool {
	return a.tick == 0
}

func (a *Animation) IsLastFrame() bool {
	return a.tick == a.lastTick()
}

// IsActiveFrame срабатывает ровно на первом тике активного кадра.
func (a *Animation) IsActiveFrame() bool {
	if a.frameAt(a.tick) != a.def.ActiveFrame {
		return false
	}
	if a.tick == 0 {
		return true
	}
	return a.frameAt(a.tick-1) != a.def.ActiveFrame
}

// SetSpeed меняет скорость в процентах (100 - исходная). Текущий прогресс сохраняется.
func (a *Animation) SetSpeed(percent float64) {
	if percent <= 0 {
		percent = 100
	}
	progress := float64(a.tick) / float64(a.duration)

	d := int(math.Round(float64(a.def.Duration) * 100 / percent))
	if d < a.def.Frames {
		d = a.def.Frames
	}
	a.duration = d
	a.tick = int(progress * float64(d))
	if a.tick > a.lastTick() {
		a.tick = a.lastTick()
	}
}

// Reset возвращает анимацию к началу с исходной скоростью.
func (a *Animation) Reset() {
	a.duration = a.def.Duration
	a.tick = 0
	a.reverse = false
	a.timesPlayed = 0
}
