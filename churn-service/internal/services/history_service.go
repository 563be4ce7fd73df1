package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
)

// HistoryService отвечает за сохранение и чтение истории предсказаний
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService создает сервис истории поверх подключения к БД
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// SaveBatch сохраняет батч и результаты по каждой записи
func (hs *HistoryService) SaveBatch(response *models.PredictResponse) error {
	batch := models.PredictionBatch{
		ID:           response.BatchID,
		ModelVersion: response.ModelVersion,
		RecordCount:  response.Count,
		FailedCount:  response.Failed,
	}

	for _, result := range response.Results {
		batch.Outcomes = append(batch.Outcomes, models.PredictionOutcome{
			BatchID:     response.BatchID,
			RecordIndex: result.Index,
			Status:      result.Status,
			Probability: result.ChurnProbability,
			ErrorCode:   result.ErrorCode,
			Field:       result.Field,
		})
	}

	if err := hs.db.Create(&batch).Error; err != nil {
		return fmt.Errorf("ошибка сохранения батча: %w", err)
	}
	return nil
}

// RecentBatches возвращает последние сохраненные батчи без результатов
func (hs *HistoryService) RecentBatches(limit int) ([]models.PredictionBatch, error) {
	var batches []models.PredictionBatch
	err := hs.db.Order("created_at DESC").
		Limit(limit).
		Find(&batches).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения истории: %w", err)
	}
	return batches, nil
}

// BatchOutcomes возвращает результаты конкретного батча в порядке записей
func (hs *HistoryService) BatchOutcomes(batchID string) ([]models.PredictionOutcome, error) {
	var outcomes []models.PredictionOutcome
	err := hs.db.Where("batch_id = ?", batchID).
		Order("record_index ASC").
		Find(&outcomes).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения результатов батча: %w", err)
	}
	return outcomes, nil
}
