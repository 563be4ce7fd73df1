package pipeline

// reconcile приводит набор колонок записи к точному составу и порядку
// feature_columns модели: отсутствующая колонка получает 0, колонка,
// которой модель не видела при обучении, отбрасывается.
//
// После этого шага вектор любой записи имеет ровно len(feature_columns)
// элементов в одном и том же порядке — единственный инвариант, нарушение
// которого дает численно корректное, но семантически неверное предсказание
// без какой-либо ошибки времени выполнения.
func (e *Encoder) reconcile(columns map[string]float64) []float64 {
	vector := make([]float64, len(e.store.FeatureColumns))
	for name, value := range columns {
		if idx, ok := e.store.ColumnIndex(name); ok {
			vector[idx] = value
		}
	}
	return vector
}

// scale применяет замороженное поколоночное масштабирование (x-mean)/scale.
// Параметры никогда не пересчитываются на этапе обслуживания.
func (e *Encoder) scale(vector []float64) {
	for i, p := range e.store.ScaleParams {
		vector[i] = (vector[i] - p.Mean) / p.Scale
	}
}
