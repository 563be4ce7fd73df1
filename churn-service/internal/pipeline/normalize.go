package pipeline

import (
	"github.com/zakariahaider14/ChurnSense-EmpowHer25/churn-service/internal/models"
)

// normalizeCategoricals сворачивает синонимы зависимых услуг и проверяет
// значения по замороженному словарю. Возвращает нормализованные значения
// категориальных полей записи.
//
// Таблица синонимов приходит из артефакта схемы: "No internet service" и
// "No phone service" означают то же, что и отказ от услуги, и при обучении
// были свернуты в "No". Добавление нового зависимого поля не требует
// изменения кода кодирования.
func (e *Encoder) normalizeCategoricals(rec models.RawRecord) (map[string]string, error) {
	out := make(map[string]string, len(e.store.CategoricalFields))

	for field, vocab := range e.store.CategoricalFields {
		value, ok := rec.StringValue(field)
		if !ok {
			return nil, &MissingFieldError{Field: field}
		}
		value = e.applySynonyms(field, value)

		if !containsValue(vocab, value) {
			if e.policy == PolicyReference {
				// Разрешающий режим: неизвестное значение кодируется как опорная
				// категория (все индикаторы нулевые), как делала старая версия сервиса
				value = e.store.Reference(field)
			} else {
				return nil, &UnknownCategoryError{Field: field, Value: value}
			}
		}
		out[field] = value
	}

	return out, nil
}

// normalizeBinaries отображает бинарные да/нет поля в 1/0 по явной таблице.
// Значение вне таблицы — ошибка: третье значение не должно молча стать нулем.
func (e *Encoder) normalizeBinaries(rec models.RawRecord) (map[string]float64, error) {
	out := make(map[string]float64, len(e.store.BinaryFields))

	for field, mapping := range e.store.BinaryFields {
		value, ok := rec.StringValue(field)
		if !ok {
			return nil, &MissingFieldError{Field: field}
		}
		value = e.applySynonyms(field, value)

		encoded, ok := mapping[value]
		if !ok {
			return nil, &UnknownCategoryError{Field: field, Value: value}
		}
		out[field] = encoded
	}

	return out, nil
}

func (e *Encoder) applySynonyms(field, value string) string {
	if synonyms, ok := e.store.Synonyms[field]; ok {
		if replacement, ok := synonyms[value]; ok {
			return replacement
		}
	}
	return value
}

func containsValue(vocab []string, v string) bool {
	for _, x := range vocab {
		if x == v {
			return true
		}
	}
	return false
}
