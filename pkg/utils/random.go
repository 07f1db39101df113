package utils

import (
	crand "crypto/rand"
	"encoding/hex"
	"hash/fnv"
	"math/rand"
)

// GenerateID создает случайный ID (например, для токена клиента)
func GenerateID() string {
	b := make([]byte, 8) // 16 символов hex
	if _, err := crand.Read(b); err != nil {
		panic("failed to generate random ID: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Roller - источник случайности для симуляции. Вся случайность сессии идёт
// через один Roller, поэтому сессия воспроизводима по сиду.
type Roller interface {
	// RandBetween возвращает целое в отрезке [min, max].
	RandBetween(min, max int) int
	// PercentChance возвращает true с вероятностью percent/100.
	// Значения <= 0 никогда не срабатывают, >= 100 срабатывают всегда.
	PercentChance(percent int) bool
	// Intn возвращает целое в [0, n). Для n <= 0 возвращает 0.
	Intn(n int) int
}

// SeededRoller - Roller поверх math/rand с явным сидом.
type SeededRoller struct {
	rng *rand.Rand
}

func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *SeededRoller) RandBetween(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.rng.Intn(max-min+1)
}

func (r *SeededRoller) PercentChance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return r.rng.Intn(100) < percent
}

func (r *SeededRoller) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.Intn(n)
}

// StringToSeed превращает строку (имя игрока, токен) в детерминированный сид.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
