// Package dungeon строит уровни песочницы: комнаты, коридоры и точки
// появления противников.
package dungeon

import (
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/rcarvalhosa/flare-engine/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Константы генерации
const (
	MapWidth  = 40
	MapHeight = 25
	MaxRooms  = 8
	MinSize   = 4
	MaxSize   = 10

	// EnemiesPerTemplate - сколько противников каждого шаблона ставит Generate.
	EnemiesPerTemplate = 2
	Pits               = 3
)

// Generate создает уровень из комнат и расселяет по нему противников
// перечисленных шаблонов.
func Generate(roller utils.Roller, templates []string) *Level {
	b := NewLevel(roller).WithRooms(MaxRooms).WithPits(Pits)
	for _, name := range templates {
		b.SpawnEnemy(name, EnemiesPerTemplate)
	}
	level := b.Build()

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"rooms":     len(level.Rooms),
		"spawns":    len(level.Spawns),
		"start":     level.Start,
	}).Info("Level generated")
	return level
}
