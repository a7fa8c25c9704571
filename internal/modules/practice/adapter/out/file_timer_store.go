package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stringlog/internal/modules/practice/domain"
	practiceout "stringlog/internal/modules/practice/port/out"
)

type FileTimerStore struct {
	path string
}

func NewFileTimerStore(path string) practiceout.TimerStore {
	return &FileTimerStore{path: path}
}

func (s *FileTimerStore) Save(_ context.Context, timer domain.Timer) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create timer dir: %w", err)
	}
	payload, err := json.MarshalIndent(timer, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timer: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write timer: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace timer: %w", err)
	}
	return nil
}

// Load returns an idle timer when nothing has been saved yet.
func (s *FileTimerStore) Load(_ context.Context) (domain.Timer, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.NewTimer(), nil
		}
		return domain.Timer{}, fmt.Errorf("read timer: %w", err)
	}
	timer := domain.NewTimer()
	if err := json.Unmarshal(payload, &timer); err != nil {
		return domain.Timer{}, fmt.Errorf("decode timer: %w", err)
	}
	return timer, nil
}

type MemoryTimerStore struct {
	timer domain.Timer
}

func NewMemoryTimerStore() *MemoryTimerStore {
	return &MemoryTimerStore{timer: domain.NewTimer()}
}

func (s *MemoryTimerStore) Save(_ context.Context, timer domain.Timer) error {
	s.timer = timer
	return nil
}

func (s *MemoryTimerStore) Load(_ context.Context) (domain.Timer, error) {
	return s.timer, nil
}
