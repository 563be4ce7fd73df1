package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/config"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/notify"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/predictor"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/sheets"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/summary"
)

func main() {
	once := flag.Bool("once", false, "выполнить один цикл опроса и выйти")
	flag.Parse()

	log.Println("=== CHURN AGENT (Spreadsheet Polling) ===")

	cfg := config.Load()
	if cfg.Sheet.CSVURL == "" {
		log.Fatal("SHEET_CSV_URL не задан")
	}

	sheetClient := sheets.NewClient(cfg.Sheet.CSVURL, 30*time.Second)
	predictClient := predictor.NewClient(
		cfg.Service.URL,
		cfg.Service.JWTSecret,
		time.Duration(cfg.Service.Timeout)*time.Second,
	)

	// Алерты по MQTT опциональны: без брокера агент просто пишет сводку в лог
	var alerts *notify.AlertPublisher
	if cfg.MQTT.Broker != "" {
		var err error
		alerts, err = notify.NewAlertPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic, cfg.MQTT.QoS)
		if err != nil {
			log.Printf("Не удалось подключиться к MQTT: %v", err)
			log.Println("Продолжаем работу без алертов")
		} else {
			defer alerts.Close()
		}
	}

	runCycle(cfg, sheetClient, predictClient, alerts)
	if *once {
		return
	}

	ticker := time.NewTicker(time.Duration(cfg.Agent.IntervalSec) * time.Second)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Printf("Агент запущен, период опроса %d сек → Ctrl+C для остановки", cfg.Agent.IntervalSec)

	for {
		select {
		case <-ticker.C:
			runCycle(cfg, sheetClient, predictClient, alerts)
		case <-sigChan:
			log.Println("Получен сигнал остановки")
			return
		}
	}
}

// runCycle один цикл: таблица → предсказание → сводка → алерт
func runCycle(
	cfg *config.Config,
	sheetClient *sheets.Client,
	predictClient *predictor.Client,
	alerts *notify.AlertPublisher,
) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Println("Fetching latest customer data...")
	records, err := sheetClient.LatestRecords(ctx, cfg.Sheet.RecordLimit)
	if err != nil {
		log.Printf("Error reading spreadsheet: %v", err)
		return
	}
	if len(records) == 0 {
		log.Println("Таблица пуста, пропускаем цикл")
		return
	}

	log.Printf("Sending %d records to churn prediction model...", len(records))
	response, err := predictClient.PredictChurn(ctx, records)
	if err != nil {
		log.Printf("Error calling model service: %v", err)
		return
	}

	for _, r := range response.Results {
		if r.Status != "ok" {
			log.Printf("Запись %d отклонена: %s (поле %q)", r.Index, r.ErrorCode, r.Field)
		}
	}

	s := summary.Summarize(response.Results, cfg.Agent.ChurnThreshold)
	log.Println("Churn Prediction Summary:")
	log.Println(s.String())

	if alerts != nil && s.Total > 0 && s.ChurnRate >= cfg.Agent.AlertRate {
		if err := alerts.PublishSummary(s, response.ModelVersion); err != nil {
			log.Printf("Не удалось опубликовать алерт: %v", err)
		} else {
			log.Printf("Алерт опубликован: churn rate %.2f%% >= %.2f%%", s.ChurnRate, cfg.Agent.AlertRate)
		}
	}
}
