package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PredictionBatch сохраненный батч предсказаний
type PredictionBatch struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	ModelVersion string    `gorm:"not null" json:"model_version"`
	RecordCount  int       `gorm:"not null" json:"record_count"`
	FailedCount  int       `gorm:"not null" json:"failed_count"`
	CreatedAt    time.Time `json:"created_at"`

	Outcomes []PredictionOutcome `gorm:"foreignKey:BatchID" json:"outcomes,omitempty"`
}

// TableName устанавливает имя таблицы
func (PredictionBatch) TableName() string {
	return "prediction_batches"
}

// BeforeCreate устанавливает ID перед созданием
func (b *PredictionBatch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// PredictionOutcome результат по одной записи внутри батча
type PredictionOutcome struct {
	ID          string   `gorm:"type:uuid;primary_key" json:"id"`
	BatchID     string   `gorm:"type:uuid;not null;index" json:"batch_id"`
	RecordIndex int      `gorm:"not null" json:"record_index"`
	Status      string   `gorm:"not null" json:"status"`
	Probability *float64 `json:"probability,omitempty"`
	ErrorCode   string   `json:"error_code,omitempty"`
	Field       string   `json:"field,omitempty"`
}

// TableName устанавливает имя таблицы
func (PredictionOutcome) TableName() string {
	return "prediction_outcomes"
}

// BeforeCreate устанавливает ID перед созданием
func (o *PredictionOutcome) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
