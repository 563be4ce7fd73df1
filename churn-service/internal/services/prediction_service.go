package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/pipeline"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/scoring"
)

// PredictionService выполняет полный цикл: кодирование батча, обращение к
// модели, сборка упорядоченного ответа и сохранение истории
type PredictionService struct {
	encoder      *pipeline.Encoder
	scorer       scoring.Scorer
	history      *HistoryService
	modelVersion string
}

// NewPredictionService создает сервис предсказаний.
// history может быть nil — тогда батчи не сохраняются.
func NewPredictionService(encoder *pipeline.Encoder, scorer scoring.Scorer, history *HistoryService, modelVersion string) *PredictionService {
	return &PredictionService{
		encoder:      encoder,
		scorer:       scorer,
		history:      history,
		modelVersion: modelVersion,
	}
}

// PredictBatch обрабатывает упорядоченный батч записей. Ошибки отдельных
// записей занимают свои позиции в ответе; ошибка модельного бэкенда
// прерывает весь батч и возвращается наружу.
func (ps *PredictionService) PredictBatch(ctx context.Context, records []models.RawRecord) (*models.PredictResponse, error) {
	enc := ps.encoder.EncodeBatch(records)

	probabilities := []float64{}
	if len(enc.Matrix) > 0 {
		var err error
		probabilities, err = ps.scorer.Score(ctx, enc.Matrix)
		if err != nil {
			return nil, fmt.Errorf("scoring failed: %w", err)
		}
	}

	response := &models.PredictResponse{
		BatchID:      uuid.New().String(),
		ModelVersion: ps.modelVersion,
		Count:        len(records),
		Results:      make([]models.RecordResult, len(records)),
	}

	// Сопоставляем вероятности с исходными позициями батча
	for k, row := range enc.Rows {
		p := probabilities[k]
		response.Results[row] = models.RecordResult{
			Index:            row,
			Status:           models.RecordStatusOK,
			ChurnProbability: &p,
		}
		response.Succeeded++
	}

	for idx, recErr := range enc.Failures {
		code, field := pipeline.ReasonFor(recErr)
		response.Results[idx] = models.RecordResult{
			Index:     idx,
			Status:    models.RecordStatusFailed,
			ErrorCode: code,
			Field:     field,
			Details:   recErr.Error(),
		}
		response.Failed++
	}

	if ps.history != nil {
		if err := ps.history.SaveBatch(response); err != nil {
			slog.Warn("Не удалось сохранить батч предсказаний", "batch_id", response.BatchID, "error", err)
		}
	}

	return response, nil
}
