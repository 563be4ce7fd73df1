package pipeline

import (
	"errors"
	"fmt"
)

// Коды причин отказа по отдельной записи
const (
	ReasonMissingField    = "missing_field"
	ReasonUnknownCategory = "unknown_category"
)

// MissingFieldError обязательное поле отсутствует в записи.
// Фатально для записи: сервис не угадывает значение.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is missing", e.Field)
}

// UnknownCategoryError категориальное значение вне словаря поля
// после нормализации синонимов.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("field %q has unknown category %q", e.Field, e.Value)
}

// ReasonFor возвращает код причины и имя поля для ошибки записи
func ReasonFor(err error) (code string, field string) {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return ReasonMissingField, missing.Field
	}
	var unknown *UnknownCategoryError
	if errors.As(err, &unknown) {
		return ReasonUnknownCategory, unknown.Field
	}
	return "invalid_record", ""
}
