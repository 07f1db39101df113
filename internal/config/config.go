package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// LowHPWarning - как сообщать игроку о низком здоровье.
type LowHPWarning string

const (
	LowHPWarnNone      LowHPWarning = "none"
	LowHPWarnText      LowHPWarning = "text"
	LowHPWarnSound     LowHPWarning = "sound"
	LowHPWarnTextSound LowHPWarning = "text_sound"
)

// ShowsText - включено ли текстовое предупреждение.
func (w LowHPWarning) ShowsText() bool {
	return w == LowHPWarnText || w == LowHPWarnTextSound
}

// PlaysSound - включено ли звуковое предупреждение.
func (w LowHPWarning) PlaysSound() bool {
	return w == LowHPWarnSound || w == LowHPWarnTextSound
}

// Controls - схема управления аватаром.
type Controls struct {
	// MouseMove - ходьба кликом мыши. В бою другой ходьбы нет.
	MouseMove bool `env:"MOUSE_MOVE" envDefault:"true"`
	// MouseMoveSwap - ходить правой кнопкой (MAIN2) вместо левой.
	MouseMoveSwap bool `env:"MOUSE_MOVE_SWAP" envDefault:"false"`
	// MouseMoveAttack - клик по врагу захватывает его как цель.
	MouseMoveAttack bool `env:"MOUSE_MOVE_ATTACK" envDefault:"true"`
	MouseAim        bool `env:"MOUSE_AIM" envDefault:"true"`
	// OrthogonalTileset поворачивает направления клавиатуры на один шаг.
	OrthogonalTileset bool `env:"ORTHOGONAL_TILESET" envDefault:"false"`

	DeadzoneMoving    float64 `env:"MOUSE_MOVE_DEADZONE_MOVING" envDefault:"0.5"`
	DeadzoneNotMoving float64 `env:"MOUSE_MOVE_DEADZONE_NOT_MOVING" envDefault:"0.75"`

	LowHPThreshold int          `env:"LOW_HP_THRESHOLD" envDefault:"20"`
	LowHPWarning   LowHPWarning `env:"LOW_HP_WARNING" envDefault:"text_sound"`
}

// Pathing - параметры эвристики перепланирования пути.
type Pathing struct {
	FailThreshold   int     `env:"PATH_FAIL_THRESHOLD" envDefault:"1"`
	FailWaitSeconds float64 `env:"PATH_FAIL_WAIT_SECONDS" envDefault:"2"`
	// Limit - максимум узлов, которые может раскрыть A*.
	Limit int `env:"PATH_LIMIT" envDefault:"4096"`
}

// Combat - параметры пошагового боя.
type Combat struct {
	MovementRange     float64 `env:"MOVEMENT_RANGE" envDefault:"6"`
	ActionsPerTurn    int     `env:"ACTIONS_PER_TURN" envDefault:"2"`
	TransitionSeconds float64 `env:"TRANSITION_SECONDS" envDefault:"1"`
	// TurnTimeoutSeconds - сколько ждать хода NPC, прежде чем отобрать ход. 0 выключает.
	TurnTimeoutSeconds float64 `env:"TURN_TIMEOUT_SECONDS" envDefault:"10"`
}

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно симуляции. 0 значит "сгенерировать".
	Seed int64 `env:"SEED" envDefault:"0"`
	// FPS - частота кадров симуляции, от неё считаются все таймеры.
	FPS  int    `env:"FPS" envDefault:"60"`
	Port string `env:"PORT" envDefault:"8080"`

	ReplayDir   string `env:"REPLAY_DIR" envDefault:"replays"`
	ContentFile string `env:"CONTENT_FILE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Controls Controls `envPrefix:"CONTROLS_"`
	Pathing  Pathing  `envPrefix:"PATHING_"`
	Combat   Combat   `envPrefix:"COMBAT_"`
}

// Load читает конфиг из переменных окружения FLARE_*.
// Пустой сид заменяется на текущее время.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "FLARE_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default возвращает конфиг со значениями по умолчанию, не читая окружение.
// Используется тестами и реплеем.
func Default() Config {
	var cfg Config
	// Parse без переменных окружения заполняет только envDefault.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// Validate проверяет значения, от которых зависит корректность симуляции.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Combat.ActionsPerTurn <= 0 {
		return fmt.Errorf("actions per turn must be positive, got %d", c.Combat.ActionsPerTurn)
	}
	if c.Combat.MovementRange < 0 {
		return fmt.Errorf("movement range must not be negative, got %v", c.Combat.MovementRange)
	}
	if c.Pathing.FailThreshold <= 0 {
		return fmt.Errorf("path fail threshold must be positive, got %d", c.Pathing.FailThreshold)
	}
	return nil
}

// Frames переводит секунды в кадры симуляции.
func (c Config) Frames(seconds float64) int {
	return int(seconds * float64(c.FPS))
}

// TickInterval - длительность одного кадра в реальном времени.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
