package avatar

import "github.com/rcarvalhosa/flare-engine/internal/animation"

// nullAnimation подставляется, когда у сущности нет нужной анимации.
// Все кадры сразу первые, активные и последние, поэтому автомат продолжает
// работать и без контента анимаций.
type nullAnimation struct{}

func (nullAnimation) Name() string        { return "" }
func (nullAnimation) AdvanceFrame()       {}
func (nullAnimation) IsFirstFrame() bool  { return true }
func (nullAnimation) IsActiveFrame() bool { return true }
func (nullAnimation) IsLastFrame() bool   { return true }
func (nullAnimation) Duration() int       { return 1 }
func (nullAnimation) TimesPlayed() int    { return 1 }
func (nullAnimation) SetSpeed(float64)    {}
func (nullAnimation) Reset()              {}

type setAnimations struct {
	set *animation.Set
}

// FromSet оборачивает набор анимаций.
func FromSet(set *animation.Set) Animations {
	return setAnimations{set: set}
}

func (s setAnimations) Lookup(name string) (Animation, bool) {
	a, ok := s.set.Lookup(name)
	if !ok {
		return nil, false
	}
	return a, true
}

// setAnimation переключает анимацию, если она ещё не та же самая.
func (a *Avatar) setAnimation(name string) {
	if a.anim != nil && a.anim.Name() == name {
		return
	}
	if a.deps.Animations != nil {
		if next, ok := a.deps.Animations.Lookup(name); ok {
			a.anim = next
			return
		}
	}
	a.anim = nullAnimation{}
}

func (a *Avatar) resetActiveAnimation() {
	a.anim.Reset()
}
