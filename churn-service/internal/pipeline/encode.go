package pipeline

// expandIndicators разворачивает нормализованные категориальные значения
// в индикаторные колонки вида {поле}_{значение} по замороженному словарю,
// опуская опорную категорию каждого поля. Набор колонок зависит только от
// словаря схемы, а значения — только от самой записи: расширение строго
// позаписное, состав батча на него не влияет.
func (e *Encoder) expandIndicators(categoricals map[string]string, numerics, binaries map[string]float64) map[string]float64 {
	columns := make(map[string]float64, len(e.store.FeatureColumns))

	for field, value := range numerics {
		columns[field] = value
	}
	for field, value := range binaries {
		columns[field] = value
	}

	for field, value := range categoricals {
		reference := e.store.Reference(field)
		for _, category := range e.store.CategoricalFields[field] {
			if category == reference {
				continue
			}
			indicator := 0.0
			if value == category {
				indicator = 1.0
			}
			columns[field+"_"+category] = indicator
		}
	}

	return columns
}
