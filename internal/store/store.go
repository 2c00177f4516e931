// store — долговечное key-value хранилище локального состояния консоли
// (токены сессии, предпочтения интерфейса).
//
// Контракт повторяет семантику браузерного localStorage:
//   - Get возвращает пустую строку, если ключа нет;
//   - Set с пустым значением удаляет ключ, а не пишет пустую строку;
//   - значения — непрозрачные строки, без валидации.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Фиксированные ключи состояния.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyThemeMode    = "theme_mode"
)

// Store — минимальный контракт хранилища.
type Store interface {
	Get(key string) string
	// Set с пустым value эквивалентен Delete(key).
	Set(key, value string) error
	Delete(key string) error
}

// Memory — хранилище в памяти (для тестов и режима без персистентности).
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

func (s *Memory) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.m[key]
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		delete(s.m, key)
		return nil
	}

	s.m[key] = value

	return nil
}

func (s *Memory) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)

	return nil
}

// File — JSON-файл с правами 0600; запись атомарна (tmp + rename),
// чтобы внезапное завершение не оставило полубитое состояние.
type File struct {
	mu   sync.Mutex
	path string
	m    map[string]string
}

// OpenFile загружает существующий файл состояния или начинает пустой.
func OpenFile(path string) (*File, error) {
	const op = "store/OpenFile"

	f := &File{path: path, m: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}

		return nil, fmt.Errorf("%s: read %q: %w", op, path, err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.m); err != nil {
			return nil, fmt.Errorf("%s: parse %q: %w", op, path, err)
		}
	}

	return f, nil
}

func (s *File) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.m[key]
}

func (s *File) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value == "" {
		delete(s.m, key)
	} else {
		s.m[key] = value
	}

	return s.flushLocked()
}

func (s *File) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)

	return s.flushLocked()
}

func (s *File) flushLocked() error {
	const op = "store/flush"

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("%s: mkdir: %w", op, err)
	}

	raw, err := json.Marshal(s.m)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%s: write tmp: %w", op, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%s: rename: %w", op, err)
	}

	return nil
}
