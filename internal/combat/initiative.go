package combat

import (
	"math"
	"sort"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
)

// Initiative - место участника в очереди ходов.
type Initiative struct {
	Entity *domain.Entity
	Roll   int
}

// InitiativeDie - кубик инициативы.
const InitiativeDie = 20

// rollInitiative: d20 + целая часть скорости.
func rollInitiative(e *domain.Entity, roller utils.Roller) Initiative {
	roll := roller.RandBetween(1, InitiativeDie) + int(math.Floor(e.Stats.Speed))
	return Initiative{Entity: e, Roll: roll}
}

// sortOrder сортирует по убыванию броска. При равенстве ходит добавленный раньше.
func sortOrder(order []Initiative) {
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Roll > order[j].Roll
	})
}
