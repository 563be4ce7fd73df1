package models

import (
	"encoding/json"
	"strconv"
)

// RawRecord сырая запись клиента: отображение имени поля в значение.
// Порядок полей не важен, неизвестные поля игнорируются.
// Значения приходят из JSON как строки, числа или булевы.
type RawRecord map[string]any

// Has сообщает, присутствует ли поле в записи (включая null)
func (r RawRecord) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// StringValue возвращает значение поля в строковом виде.
// Второй результат false, если поле отсутствует или равно null.
func (r RawRecord) StringValue(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		return t.String(), true
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
