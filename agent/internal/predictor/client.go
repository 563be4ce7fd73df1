package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/sheets"
)

// RecordResult результат по одной записи, позиция соответствует входу
type RecordResult struct {
	Index            int      `json:"index"`
	Status           string   `json:"status"`
	ChurnProbability *float64 `json:"churn_probability,omitempty"`
	ErrorCode        string   `json:"error_code,omitempty"`
	Field            string   `json:"field,omitempty"`
	Details          string   `json:"details,omitempty"`
}

// PredictResponse ответ churn-service на батч
type PredictResponse struct {
	BatchID      string         `json:"batch_id"`
	ModelVersion string         `json:"model_version"`
	Count        int            `json:"count"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	Results      []RecordResult `json:"results"`
}

// Client обращается к churn-service за предсказаниями
type Client struct {
	serviceURL string
	jwtSecret  string
	httpClient *http.Client
}

// NewClient создает клиент сервиса предсказаний.
// Непустой jwtSecret включает подпись сервисного токена.
func NewClient(serviceURL, jwtSecret string, timeout time.Duration) *Client {
	return &Client{
		serviceURL: serviceURL,
		jwtSecret:  jwtSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PredictChurn отправляет батч записей и возвращает упорядоченные результаты
func (c *Client) PredictChurn(ctx context.Context, records []sheets.Record) (*PredictResponse, error) {
	requestBody, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/churn/predict", c.serviceURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if c.jwtSecret != "" {
		token, err := c.signToken()
		if err != nil {
			return nil, fmt.Errorf("ошибка подписи токена: %w", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("churn-service вернул ошибку %d: %s", resp.StatusCode, string(body))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var predictResp PredictResponse
	if err := json.Unmarshal(responseBody, &predictResp); err != nil {
		return nil, fmt.Errorf("ошибка десериализации ответа: %w", err)
	}

	if len(predictResp.Results) != len(records) {
		return nil, fmt.Errorf("сервис вернул %d результатов на %d записей",
			len(predictResp.Results), len(records))
	}

	return &predictResp, nil
}

// signToken подписывает короткоживущий сервисный токен общим секретом
func (c *Client) signToken() (string, error) {
	claims := jwt.MapClaims{
		"caller": "sheets-agent",
		"iss":    "churn-agent",
		"iat":    jwt.NewNumericDate(time.Now()),
		"exp":    jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.jwtSecret))
}
