package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LoadError означает, что артефакт схемы отсутствует или несогласован.
// Сервис не должен начинать обслуживание при этой ошибке.
type LoadError struct {
	Reason string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("schema artifact is invalid: %s", e.Reason)
}

// ScaleParam параметры масштабирования одной колонки, зафиксированные при обучении
type ScaleParam struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

// Store иммутабельный артефакт схемы модели: порядок колонок, параметры
// масштабирования и статистики импутации. Создается один раз при обучении,
// загружается один раз при старте сервиса и после этого только читается.
type Store struct {
	ModelVersion        string                        `json:"model_version"`
	FeatureColumns      []string                      `json:"feature_columns"`
	ScaleParams         []ScaleParam                  `json:"scale_params"`
	ImputeMeans         map[string]float64            `json:"impute_means"`
	NumericFields       []string                      `json:"numeric_fields"`
	BinaryFields        map[string]map[string]float64 `json:"binary_fields"`
	CategoricalFields   map[string][]string           `json:"categorical_fields"`
	ReferenceCategories map[string]string             `json:"reference_categories"`
	Synonyms            map[string]map[string]string  `json:"synonyms"`

	columnIndex map[string]int
}

// Load читает и валидирует артефакт схемы из JSON файла
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Reason: fmt.Sprintf("cannot read %s: %v", path, err)}
	}
	return Parse(data)
}

// Parse разбирает артефакт схемы из JSON
func Parse(data []byte) (*Store, error) {
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, &LoadError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.buildIndex()
	return &s, nil
}

// Validate проверяет согласованность артефакта
func (s *Store) Validate() error {
	if len(s.FeatureColumns) == 0 {
		return &LoadError{Reason: "feature_columns is empty"}
	}
	if len(s.ScaleParams) != len(s.FeatureColumns) {
		return &LoadError{Reason: fmt.Sprintf(
			"scale_params length %d does not match feature_columns length %d",
			len(s.ScaleParams), len(s.FeatureColumns))}
	}
	for i, p := range s.ScaleParams {
		if p.Scale <= 0 {
			return &LoadError{Reason: fmt.Sprintf(
				"scale for column %q must be positive, got %g", s.FeatureColumns[i], p.Scale)}
		}
	}

	seen := make(map[string]bool, len(s.FeatureColumns))
	for _, col := range s.FeatureColumns {
		if seen[col] {
			return &LoadError{Reason: fmt.Sprintf("duplicate feature column %q", col)}
		}
		seen[col] = true
	}

	// Каждое импутируемое числовое поле должно иметь замороженную статистику
	for _, field := range s.NumericFields {
		if _, ok := s.ImputeMeans[field]; !ok {
			return &LoadError{Reason: fmt.Sprintf("numeric field %q has no impute mean", field)}
		}
		if _, ok := s.CategoricalFields[field]; ok {
			return &LoadError{Reason: fmt.Sprintf("field %q declared both numeric and categorical", field)}
		}
		if _, ok := s.BinaryFields[field]; ok {
			return &LoadError{Reason: fmt.Sprintf("field %q declared both numeric and binary", field)}
		}
	}

	for field, vocab := range s.CategoricalFields {
		if len(vocab) < 2 {
			return &LoadError{Reason: fmt.Sprintf("vocabulary of field %q has fewer than 2 values", field)}
		}
		if ref, ok := s.ReferenceCategories[field]; ok && !contains(vocab, ref) {
			return &LoadError{Reason: fmt.Sprintf(
				"reference category %q of field %q is not in its vocabulary", ref, field)}
		}
		if _, ok := s.BinaryFields[field]; ok {
			return &LoadError{Reason: fmt.Sprintf("field %q declared both categorical and binary", field)}
		}
	}

	for field, mapping := range s.BinaryFields {
		if len(mapping) == 0 {
			return &LoadError{Reason: fmt.Sprintf("binary field %q has empty value mapping", field)}
		}
	}

	return nil
}

// RequiredFields возвращает отсортированный список полей, обязательных в каждой записи
func (s *Store) RequiredFields() []string {
	fields := make([]string, 0, len(s.NumericFields)+len(s.BinaryFields)+len(s.CategoricalFields))
	fields = append(fields, s.NumericFields...)
	for f := range s.BinaryFields {
		fields = append(fields, f)
	}
	for f := range s.CategoricalFields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Reference возвращает опорную категорию поля: закрепленную в артефакте
// или первую по алфавиту (так же выбирает ее кодирование при обучении)
func (s *Store) Reference(field string) string {
	if ref, ok := s.ReferenceCategories[field]; ok {
		return ref
	}
	vocab := s.CategoricalFields[field]
	if len(vocab) == 0 {
		return ""
	}
	sorted := make([]string, len(vocab))
	copy(sorted, vocab)
	sort.Strings(sorted)
	return sorted[0]
}

// ColumnIndex возвращает позицию колонки в векторе признаков
func (s *Store) ColumnIndex(column string) (int, bool) {
	idx, ok := s.columnIndex[column]
	return idx, ok
}

func (s *Store) buildIndex() {
	s.columnIndex = make(map[string]int, len(s.FeatureColumns))
	for i, col := range s.FeatureColumns {
		s.columnIndex[col] = i
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
