package domain

// Timer - счётчик кадров в виде значения: длительность и сколько уже прошло.
// Все методы чистые и возвращают новое значение, поэтому таймер тривиально
// тестируется без игрового цикла.
type Timer struct {
	Duration int `json:"duration"`
	Elapsed  int `json:"elapsed"`
}

// NewTimer возвращает таймер длительностью d, запущенный с начала.
func NewTimer(d int) Timer {
	if d < 0 {
		d = 0
	}
	return Timer{Duration: d}
}

// Finished возвращает таймер длительностью d, который уже истёк.
func Finished(d int) Timer {
	t := NewTimer(d)
	t.Elapsed = t.Duration
	return t
}

// IsEnd - истёк ли таймер. Нулевой таймер считается истёкшим.
func (t Timer) IsEnd() bool {
	return t.Elapsed >= t.Duration
}

// IsBegin - запущен ли таймер и ещё не сделал ни одного тика.
func (t Timer) IsBegin() bool {
	return t.Duration > 0 && t.Elapsed == 0
}

// Remaining - сколько кадров осталось до конца.
func (t Timer) Remaining() int {
	if t.IsEnd() {
		return 0
	}
	return t.Duration - t.Elapsed
}

// Tick продвигает таймер на один кадр. Истёкший таймер не меняется.
func (t Timer) Tick() Timer {
	if !t.IsEnd() {
		t.Elapsed++
	}
	return t
}

// Restart начинает отсчёт той же длительности заново.
func (t Timer) Restart() Timer {
	t.Elapsed = 0
	return t
}

// Finish сразу переводит таймер в истёкшее состояние.
func (t Timer) Finish() Timer {
	t.Elapsed = t.Duration
	return t
}

// Fraction - доля оставшегося времени в диапазоне [0, 1], для индикаторов кулдауна.
func (t Timer) Fraction() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Remaining()) / float64(t.Duration)
}
