// Пакет filesync зеркалирует файлы выгрузки с сетевого ресурса в локальный
// каталог. Таймеров здесь нет, момент синхронизации выбирает вызывающий.
package filesync

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"planerka/parser"
)

// Syncer копирует изменившиеся файлы-источники по времени модификации
type Syncer struct {
	networkDir string
	localDir   string
	logger     *slog.Logger
}

// NewSyncer создает зеркало сетевого каталога выгрузок
func NewSyncer(networkDir, localDir string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{networkDir: networkDir, localDir: localDir, logger: logger}
}

// SyncAll синхронизирует все файлы реестра вкладок. Возвращает число
// скопированных файлов; недоступность отдельного файла не прерывает
// обход остальных.
func (s *Syncer) SyncAll() (int, error) {
	if err := os.MkdirAll(s.localDir, 0o755); err != nil {
		return 0, fmt.Errorf("локальный каталог выгрузок: %w", err)
	}
	copied := 0
	for _, tab := range parser.Tabs() {
		changed, err := s.syncFile(tab.File)
		if err != nil {
			s.logger.Warn("файл не синхронизирован", "file", tab.File, "error", err)
			continue
		}
		if changed {
			copied++
		}
	}
	return copied, nil
}

// syncFile копирует один файл, если локальной копии нет или время
// модификации отличается от сетевого оригинала
func (s *Syncer) syncFile(name string) (bool, error) {
	src := filepath.Join(s.networkDir, name)
	dst := filepath.Join(s.localDir, name)

	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if dstInfo, err := os.Stat(dst); err == nil {
		if dstInfo.ModTime().Equal(srcInfo.ModTime()) {
			return false, nil
		}
	}

	if err := copyFile(src, dst); err != nil {
		return false, err
	}
	// Время модификации переносится с оригинала, по нему идет сравнение
	// при следующем обходе.
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return true, err
	}
	s.logger.Info("файл синхронизирован", "file", name)
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
