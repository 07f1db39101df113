package domain

// PowerID - индекс способности в таблице. Ноль - отсутствие способности.
type PowerID uint32

const NoPower PowerID = 0

const (
	// DefaultMeleeRange - дистанция ближней атаки по умолчанию (в тайлах).
	DefaultMeleeRange = 1.0
	// DefaultThreatRange - радиус, в котором враг замечает игрока.
	DefaultThreatRange = 4.0
)
