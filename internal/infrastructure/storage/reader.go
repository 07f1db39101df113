package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rcarvalhosa/flare-engine/internal/domain"
)

// ErrInvalidReplay - файл не является записью поддерживаемой версии.
var ErrInvalidReplay = errors.New("invalid replay file")

// Load читает запись целиком в память.
func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(bufio.NewReader(f))
}

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	// 1. Читаем заголовок целиком
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidReplay, header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: version %d (expected %d)", ErrInvalidReplay, header.Version, Version1)
	}
	if header.ActionCount < 0 || header.FPS < 0 {
		return nil, fmt.Errorf("%w: action count %d, fps %d", ErrInvalidReplay, header.ActionCount, header.FPS)
	}

	session := &domain.ReplaySession{
		Seed:      header.Seed,
		Timestamp: header.Timestamp,
		FPS:       int(header.FPS),
		Actions:   make([]domain.ReplayAction, 0, min(int(header.ActionCount), 4096)),
	}

	// 2. Читаем Actions
	for i := 0; i < int(header.ActionCount); i++ {
		var ah ActionHeader
		if err := binary.Read(r, binary.LittleEndian, &ah); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}

		if ah.ActionType == uint8(domain.ActionUnknown) {
			return nil, fmt.Errorf("%w: action %d has no type", ErrInvalidReplay, i)
		}
		act := domain.ReplayAction{
			Tick:   int(ah.Tick),
			Action: domain.ActionType(ah.ActionType),
		}
		if ah.PayloadLen > 0 {
			act.Payload = make([]byte, ah.PayloadLen)
			if _, err := io.ReadFull(r, act.Payload); err != nil {
				return nil, fmt.Errorf("action %d payload: %w", i, err)
			}
		}

		session.Actions = append(session.Actions, act)
	}

	return session, nil
}
