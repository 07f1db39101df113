package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stdout с уровнем info, чтобы пакеты можно было
// использовать в тестах без явной инициализации.
var Log = logrus.New()

// Options - настройки логгера. Заполняются из config.Config.
type Options struct {
	// Level - уровень логирования ("debug", "info", ...). По умолчанию "info".
	Level string
	// Format - "json" для продакшена и сбора логов, иначе текст для разработки.
	Format string
	// Output - куда писать. nil означает stdout.
	Output io.Writer
}

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init(opts Options) {
	Log = logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	} else {
		Log.SetOutput(os.Stdout)
	}
}

// Component возвращает логгер с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
