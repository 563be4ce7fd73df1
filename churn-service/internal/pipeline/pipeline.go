package pipeline

import (
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/schema"
)

// Политика обработки категориального значения вне словаря
const (
	// PolicyFail отклоняет запись с UnknownCategoryError
	PolicyFail = "fail"
	// PolicyReference кодирует неизвестное значение как опорную категорию
	// (поведение старой версии сервиса)
	PolicyReference = "reference"
)

// Encoder преобразует сырую запись клиента в масштабированный вектор
// признаков в точном порядке колонок модели. Не хранит состояния запроса:
// любое число записей может кодироваться конкурентно.
type Encoder struct {
	store  *schema.Store
	policy string
}

// NewEncoder создает кодировщик поверх загруженной схемы
func NewEncoder(store *schema.Store, unknownCategoryPolicy string) *Encoder {
	policy := unknownCategoryPolicy
	if policy != PolicyReference {
		policy = PolicyFail
	}
	return &Encoder{store: store, policy: policy}
}

// EncodeRecord применяет полный конвейер к одной записи:
// нормализация категорий → приведение чисел → индикаторное кодирование →
// согласование со схемой → масштабирование.
// Результирующий вектор принадлежит вызывающему и живет в пределах запроса.
func (e *Encoder) EncodeRecord(rec models.RawRecord) ([]float64, error) {
	categoricals, err := e.normalizeCategoricals(rec)
	if err != nil {
		return nil, err
	}
	binaries, err := e.normalizeBinaries(rec)
	if err != nil {
		return nil, err
	}
	numerics, err := e.coerceNumerics(rec)
	if err != nil {
		return nil, err
	}

	columns := e.expandIndicators(categoricals, numerics, binaries)
	vector := e.reconcile(columns)
	e.scale(vector)
	return vector, nil
}

// BatchEncoding результат кодирования батча с частичными отказами
type BatchEncoding struct {
	// Matrix масштабированные векторы успешно закодированных записей
	Matrix [][]float64
	// Rows исходный индекс записи для каждой строки Matrix
	Rows []int
	// Failures ошибки по индексам отклоненных записей
	Failures map[int]error
}

// EncodeBatch кодирует записи независимо друг от друга. Ошибка одной записи
// не прерывает батч: запись получает место в Failures, а ее позиция
// сохраняется для позиционного сопоставления результата с входом.
func (e *Encoder) EncodeBatch(records []models.RawRecord) *BatchEncoding {
	enc := &BatchEncoding{
		Matrix:   make([][]float64, 0, len(records)),
		Rows:     make([]int, 0, len(records)),
		Failures: make(map[int]error),
	}

	for i, rec := range records {
		vector, err := e.EncodeRecord(rec)
		if err != nil {
			enc.Failures[i] = err
			continue
		}
		enc.Matrix = append(enc.Matrix, vector)
		enc.Rows = append(enc.Rows, i)
	}

	return enc
}
