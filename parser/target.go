package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TargetStore хранит общий целевой процент выполнения в текстовом файле.
// Значение пишет только разбор первичного файла плана, читают все вкладки;
// запись идёт полной перезаписью файла через переименование.
type TargetStore struct {
	path string
}

// NewTargetStore создаёт хранилище целевого процента по пути файла
func NewTargetStore(path string) *TargetStore {
	return &TargetStore{path: path}
}

// Load читает целевой процент. Отсутствующий файл создаётся со значением
// "0"; нечитаемое содержимое тоже даёт 0.
func (s *TargetStore) Load() float64 {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			_ = os.WriteFile(s.path, []byte("0"), 0o644)
		}
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	if err != nil {
		return 0
	}
	return v
}

// Save записывает новое значение целевого процента
func (s *TargetStore) Save(value float64) error {
	tmp := s.path + ".tmp"
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return fmt.Errorf("запись целевого процента: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("замена файла целевого процента: %w", err)
	}
	return nil
}

// Path возвращает путь файла хранилища
func (s *TargetStore) Path() string {
	return filepath.Clean(s.path)
}
