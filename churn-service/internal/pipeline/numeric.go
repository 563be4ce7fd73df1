package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
)

// coerceNumerics приводит объявленные числовые поля к конечным числам.
// Неразборчивое значение (пустая строка, мусор, NaN/Inf) импутируется
// средним этого поля, замороженным при обучении в артефакте схемы —
// никогда не средним по текущему батчу, иначе импутация зависела бы от
// состава батча и не воспроизводилась бы между вызовами.
// Полное отсутствие обязательного числового поля — ошибка записи.
func (e *Encoder) coerceNumerics(rec models.RawRecord) (map[string]float64, error) {
	out := make(map[string]float64, len(e.store.NumericFields))

	for _, field := range e.store.NumericFields {
		raw, ok := rec.StringValue(field)
		if !ok {
			return nil, &MissingFieldError{Field: field}
		}

		value, parsed := parseFinite(raw)
		if !parsed {
			value = e.store.ImputeMeans[field]
		}
		out[field] = value
	}

	return out, nil
}

// parseFinite разбирает строку как конечное число
func parseFinite(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
