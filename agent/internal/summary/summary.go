package summary

import (
	"fmt"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/predictor"
)

// Summary сводка по батчу предсказаний
type Summary struct {
	Total     int     `json:"total"`      // успешно оцененные клиенты
	Churners  int     `json:"churners"`   // клиенты с вероятностью оттока >= порога
	Failed    int     `json:"failed"`     // записи, отклоненные сервисом
	ChurnRate float64 `json:"churn_rate"` // доля уходящих в процентах
}

// Summarize сводит упорядоченные результаты батча. Отклоненные записи
// не входят в знаменатель доли оттока.
func Summarize(results []predictor.RecordResult, threshold float64) Summary {
	var s Summary

	for _, r := range results {
		if r.ChurnProbability == nil {
			s.Failed++
			continue
		}
		s.Total++
		if *r.ChurnProbability >= threshold {
			s.Churners++
		}
	}

	if s.Total > 0 {
		s.ChurnRate = float64(s.Churners) / float64(s.Total) * 100
	}

	return s
}

func (s Summary) String() string {
	if s.Total == 0 {
		return "No churn data available for summarization."
	}
	return fmt.Sprintf(
		"Out of the latest %d customer records, %d customers are predicted to churn, resulting in a churn rate of %.2f%%.",
		s.Total, s.Churners, s.ChurnRate)
}
