package engine

import (
	"fmt"
	"time"

	"github.com/rcarvalhosa/flare-engine/pkg/api"
	"github.com/rcarvalhosa/flare-engine/pkg/logger"
	"github.com/sirupsen/logrus"
)

// addLog добавляет запись в журнал игрока и дублирует её в лог сервера.
func (s *Session) addLog(text, logType string) {
	if text == "" {
		return
	}
	s.logSeq++
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", s.tick, s.logSeq),
		Text:      text,
		Type:      logType,
		Tick:      s.tick,
		Timestamp: time.Now().UnixMilli(),
	})
	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"tick":      s.tick,
	}).Info(text)
}

// TakeLogs отдаёт записи журнала с прошлого вызова.
func (s *Session) TakeLogs() []api.LogEntry {
	out := s.logs
	s.logs = nil
	return out
}
