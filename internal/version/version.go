// Package version описывает сборку движка. Переменные Build* задаются
// через -ldflags "-X .../internal/version.BuildDate=2026-03-11" и т.д.
package version

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Protocol - версия формата снимков и команд. Поднимается при любом
// несовместимом изменении pkg/api.
const Protocol = 1

var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - число дней от эпохи проекта
var buildEpoch = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

var errNoBuildDate = errors.New("build date is not set")

// VersionInfo - метаданные сборки для /version и стартового лога
type VersionInfo struct {
	BuildID    int    `json:"build_id"`
	BuildDate  string `json:"build_date"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Protocol   int    `json:"protocol"`
	GoVersion  string `json:"go_version"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID переводит BuildDate в номер сборки.
func CalculateBuildID() (int, error) {
	return buildID(BuildDate)
}

func buildID(date string) (int, error) {
	if date == "" {
		return 0, errNoBuildDate
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, buildEpoch.Format("2006-01-02"))
	}
	// Обе даты в UTC, так что в сутках ровно 24 часа
	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные. Ошибка даты не фатальна: она попадает в поле Error.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
		Protocol:  Protocol,
		GoVersion: runtime.Version(),
	}
	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

// String - строка для лога при старте.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s) protocol v%d", info.Error, info.Protocol)
	}
	return fmt.Sprintf(
		"Build %d (%s) commit[%s] branch[%s] ci[%s] protocol v%d",
		info.BuildID,
		info.BuildDate,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"),
		info.Protocol,
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
