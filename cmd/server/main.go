package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"planerka/database"
	"planerka/internal/config"
	"planerka/parser"
	"planerka/server"
	"planerka/service"
)

func main() {
	log.Println("Запуск сервера отчетов Планёрка...")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Файл .env не загружен: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.FilesDir, 0o755); err != nil {
		log.Fatalf("Каталог выгрузок недоступен: %v", err)
	}

	targetStore := parser.NewTargetStore(cfg.TargetPercentFile)
	historyDB := database.NewHistoryDB(cfg.HistoryDBPath, cfg.DBTimeout, logger)
	dataService := service.NewDataService(cfg.FilesDir, targetStore, historyDB, logger)

	router := server.NewRouter(dataService, server.Options{
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("сервер запущен", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("остановка сервера")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("сервер остановлен с ошибкой", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
