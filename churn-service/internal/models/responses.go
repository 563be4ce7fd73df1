package models

import "time"

// Статусы результата по отдельной записи
const (
	RecordStatusOK     = "ok"
	RecordStatusFailed = "failed"
)

// RecordResult результат по одной записи батча, позиция соответствует входу
// @Description Результат предсказания для одной записи клиента
type RecordResult struct {
	Index            int      `json:"index" example:"0"`                                  // Позиция записи во входном батче
	Status           string   `json:"status" example:"ok" enums:"ok,failed"`              // Статус обработки записи
	ChurnProbability *float64 `json:"churn_probability,omitempty" example:"0.73"`         // Вероятность оттока [0,1]
	ErrorCode        string   `json:"error_code,omitempty" example:"missing_field"`       // Код ошибки для неуспешной записи
	Field            string   `json:"field,omitempty" example:"TotalCharges"`             // Поле, вызвавшее ошибку
	Details          string   `json:"details,omitempty" example:"required field missing"` // Подробности ошибки
}

// PredictResponse ответ на батч предсказаний
// @Description Упорядоченные результаты предсказания оттока, по одному на входную запись
type PredictResponse struct {
	BatchID      string         `json:"batch_id" example:"550e8400-e29b-41d4-a716-446655440000"` // UUID батча
	ModelVersion string         `json:"model_version" example:"xgb-2024-06-01"`                  // Версия модели из артефакта схемы
	Count        int            `json:"count" example:"3"`                                       // Количество записей во входном батче
	Succeeded    int            `json:"succeeded" example:"2"`                                   // Количество успешно обработанных записей
	Failed       int            `json:"failed" example:"1"`                                      // Количество записей с ошибками
	Results      []RecordResult `json:"results"`                                                 // Результаты в порядке входа
}

// SchemaResponse сведения о загруженной схеме модели
// @Description Информация о замороженной схеме признаков
type SchemaResponse struct {
	ModelVersion   string   `json:"model_version" example:"xgb-2024-06-01"` // Версия модели
	FeatureCount   int      `json:"feature_count" example:"23"`             // Число колонок вектора признаков
	RequiredFields []string `json:"required_fields"`                        // Обязательные поля сырой записи
}

// HealthResponse состояние сервиса
// @Description Информация о состоянии и работоспособности сервиса
type HealthResponse struct {
	Status       string    `json:"status" example:"healthy"`                 // Статус сервиса
	Service      string    `json:"service" example:"churn-service"`          // Название сервиса
	ModelVersion string    `json:"model_version" example:"xgb-2024-06-01"`   // Версия модели
	Database     string    `json:"database" example:"connected"`             // Состояние подключения к БД
	Timestamp    time.Time `json:"timestamp" example:"2024-06-01T10:00:00Z"` // Время проверки
}

// ErrorResponse стандартная структура ошибки
type ErrorResponse struct {
	Error   string `json:"error" example:"validation error"`                    // Сообщение об ошибке
	Details string `json:"details,omitempty" example:"field validation failed"` // Дополнительные детали
}
