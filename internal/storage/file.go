package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore хранит все записи в одном JSON-документе на диске.
// Запись на диск выполняется атомарно через временный файл и rename.
type FileStore struct {
	path string

	mu      sync.Mutex
	records map[string]json.RawMessage
}

// NewFileStore открывает хранилище по указанному пути. Повреждённый или
// отсутствующий файл считается пустым хранилищем.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		records: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	// Нечитаемый документ трактуется как отсутствующий: начинаем с пустого
	// набора записей, дефолты будут восстановлены выше по стеку.
	if err := json.Unmarshal(data, &s.records); err != nil {
		s.records = make(map[string]json.RawMessage)
	}

	return s, nil
}

// Get возвращает запись по ключу.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.records[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set сохраняет запись по ключу и сбрасывает документ на диск.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make(json.RawMessage, len(value))
	copy(stored, value)
	s.records[key] = stored

	return s.flush()
}

// Delete удаляет запись по ключу и сбрасывает документ на диск.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[key]; !ok {
		return nil
	}

	delete(s.records, key)
	return s.flush()
}

// Close освобождает ресурсы хранилища.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) flush() error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("marshal store document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".urbanaura-store-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
