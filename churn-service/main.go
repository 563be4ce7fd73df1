package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/config"
	_ "github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/docs"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/database"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/handlers"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/pipeline"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/schema"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/scoring"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/services"
)

func main() {
	config.InitLogger()
	slog.Info("Starting churn-service", "version", "1.0.0")

	// Загрузка конфигурации
	cfg := config.Load()
	slog.Info("Configuration loaded successfully",
		"server_port", cfg.Server.Port,
		"schema_path", cfg.Pipeline.SchemaPath,
		"model_url", cfg.Model.ServiceURL,
	)

	// Схема модели обязательна: без нее сервис не начинает обслуживание
	store, err := schema.Load(cfg.Pipeline.SchemaPath)
	if err != nil {
		slog.Error("Не удалось загрузить артефакт схемы", "error", err)
		os.Exit(1)
	}
	slog.Info("Схема модели загружена",
		"model_version", store.ModelVersion,
		"feature_columns", len(store.FeatureColumns),
	)

	// БД вспомогательная: без нее сервис работает, но не пишет историю
	var historyService *services.HistoryService
	db, err := database.Connect(cfg)
	if err != nil {
		slog.Warn("Не удалось подключиться к БД, продолжаем без истории", "error", err)
	} else {
		if err := database.RunMigrations(db); err != nil {
			slog.Error("Ошибка миграций", "error", err)
			os.Exit(1)
		}
		historyService = services.NewHistoryService(db)
	}

	// Инициализация сервисов
	encoder := pipeline.NewEncoder(store, cfg.Pipeline.UnknownCategoryPolicy)
	scorer := scoring.NewHTTPScorer(cfg.Model.ServiceURL, time.Duration(cfg.Model.Timeout)*time.Second)
	predictionService := services.NewPredictionService(encoder, scorer, historyService, store.ModelVersion)

	// Настройка роутера
	handler := handlers.NewChurnHandler(predictionService, historyService, store, cfg)
	router := handler.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(server)
}

func waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server gracefully stopped")
}
