package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервера отчетов
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Каталоги выгрузок
	FilesDir   string `json:"files_dir"`
	NetworkDir string `json:"network_dir"`

	// Файл общего целевого процента
	TargetPercentFile string `json:"target_percent_file"`

	// Центральная база истории
	HistoryDBPath string        `json:"history_db_path"`
	DBTimeout     time.Duration `json:"db_timeout"`

	// Ограничение частоты запросов
	RateLimit int `json:"rate_limit"`

	// Расписание демона снимков (формат cron)
	SnapshotSchedule string `json:"snapshot_schedule"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("SERVER_PORT", "8090"),
		FilesDir:          getEnv("FILES_DIR", "files"),
		NetworkDir:        getEnv("NETWORK_DIR", ""),
		TargetPercentFile: getEnv("TARGET_PERCENT_FILE", "files/total_plan.txt"),
		HistoryDBPath:     getEnv("HISTORY_DB_PATH", "files/central_sales_history.db"),
		DBTimeout:         getEnvDuration("DB_TIMEOUT", 10*time.Second),
		RateLimit:         getEnvInt("RATE_LIMIT", 100),
		SnapshotSchedule:  getEnv("SNAPSHOT_SCHEDULE", "0 21 * * 1-5"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("пустой порт сервера")
	}
	if c.FilesDir == "" {
		return fmt.Errorf("пустой каталог выгрузок")
	}
	if c.HistoryDBPath == "" {
		return fmt.Errorf("пустой путь базы истории")
	}
	if c.DBTimeout <= 0 {
		return fmt.Errorf("некорректный таймаут базы: %s", c.DBTimeout)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("некорректный лимит запросов: %d", c.RateLimit)
	}
	return nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
