// Демон снимков: по расписанию синхронизирует файлы выгрузки с сетевого
// ресурса, разбирает их и записывает дневной снимок в центральную базу
// истории. Ядро отчета расписаний не знает, внешний триггер живет здесь.
package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"planerka/database"
	"planerka/filesync"
	"planerka/internal/config"
	"planerka/parser"
	"planerka/service"
)

func main() {
	log.Println("Запуск демона снимков истории продаж...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Файл .env не загружен: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	targetStore := parser.NewTargetStore(cfg.TargetPercentFile)
	historyDB := database.NewHistoryDB(cfg.HistoryDBPath, cfg.DBTimeout, logger)
	dataService := service.NewDataService(cfg.FilesDir, targetStore, historyDB, logger)

	var syncer *filesync.Syncer
	if cfg.NetworkDir != "" {
		syncer = filesync.NewSyncer(cfg.NetworkDir, cfg.FilesDir, logger)
	}

	job := func() {
		if err := writeSnapshot(cfg, dataService, syncer, logger); err != nil {
			logger.Error("снимок не записан", "error", err)
		}
	}

	// Разовый прогон при старте, дальше по расписанию.
	job()

	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(
		slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))
	if _, err := c.AddFunc(cfg.SnapshotSchedule, job); err != nil {
		log.Fatalf("Некорректное расписание %q: %v", cfg.SnapshotSchedule, err)
	}
	c.Start()
	logger.Info("демон снимков запущен", "schedule", cfg.SnapshotSchedule)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	<-c.Stop().Done()
	logger.Info("демон снимков остановлен")
}

func writeSnapshot(cfg *config.Config, data *service.DataService, syncer *filesync.Syncer, logger *slog.Logger) error {
	if syncer != nil {
		copied, err := syncer.SyncAll()
		if err != nil {
			logger.Warn("синхронизация выгрузок не удалась", "error", err)
		} else {
			logger.Info("выгрузки синхронизированы", "copied", copied)
		}
	}

	date := time.Now()
	records := data.BuildSnapshot(date)
	if len(records) == 0 {
		logger.Warn("снимок пуст, запись пропущена", "date", date.Format(database.DateLayout))
		return nil
	}

	db, err := database.OpenSnapshotDB(cfg.HistoryDBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ReplaceDay(date, records); err != nil {
		return err
	}
	logger.Info("снимок записан",
		"date", date.Format(database.DateLayout),
		"records", len(records),
	)
	return nil
}
