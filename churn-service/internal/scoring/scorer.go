package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Error ошибка модельного бэкенда. Это проблема инфраструктуры, а не данных,
// поэтому она прерывает весь батч.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("model backend error: %s", e.Message)
}

// Scorer вычисляет вероятность оттока для каждой строки матрицы признаков.
// Реализация должна быть безопасной для конкурентных вызовов.
type Scorer interface {
	Score(ctx context.Context, matrix [][]float64) ([]float64, error)
}

// ScoreRequest запрос к модельному сервису
type ScoreRequest struct {
	Instances [][]float64 `json:"instances"`
}

// ScoreResponse ответ модельного сервиса
type ScoreResponse struct {
	Probabilities []float64 `json:"probabilities"`
}

// HTTPScorer отправляет масштабированную матрицу развернутому модельному
// сервису и читает по одной вероятности на строку
type HTTPScorer struct {
	url        string
	httpClient *http.Client
}

// NewHTTPScorer создает клиент модельного сервиса
func NewHTTPScorer(serviceURL string, timeout time.Duration) *HTTPScorer {
	return &HTTPScorer{
		url: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Score выполняет батчевое предсказание. Порядок вероятностей в ответе
// соответствует порядку строк матрицы.
func (s *HTTPScorer) Score(ctx context.Context, matrix [][]float64) ([]float64, error) {
	requestBody, err := json.Marshal(ScoreRequest{Instances: matrix})
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("cannot serialize request: %v", err)}
	}

	url := fmt.Sprintf("%s/score", s.url)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("cannot build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &Error{Message: fmt.Sprintf("model service returned %d: %s", resp.StatusCode, string(body))}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("cannot read response: %v", err)}
	}

	var scoreResp ScoreResponse
	if err := json.Unmarshal(responseBody, &scoreResp); err != nil {
		return nil, &Error{Message: fmt.Sprintf("cannot parse response: %v", err)}
	}

	if len(scoreResp.Probabilities) != len(matrix) {
		return nil, &Error{Message: fmt.Sprintf(
			"model returned %d probabilities for %d rows", len(scoreResp.Probabilities), len(matrix))}
	}
	for i, p := range scoreResp.Probabilities {
		if p < 0 || p > 1 {
			return nil, &Error{Message: fmt.Sprintf("probability %g at row %d is outside [0,1]", p, i)}
		}
	}

	return scoreResp.Probabilities, nil
}
