package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"
)

// Record одна строка таблицы: имя колонки -> значение
type Record map[string]any

// Client читает записи клиентов из опубликованной таблицы через CSV экспорт
type Client struct {
	csvURL     string
	httpClient *http.Client
}

// NewClient создает клиент таблицы
func NewClient(csvURL string, timeout time.Duration) *Client {
	return &Client{
		csvURL: csvURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LatestRecords возвращает последние limit строк таблицы в исходном порядке.
// Первая строка CSV считается заголовком.
func (c *Client) LatestRecords(ctx context.Context, limit int) ([]Record, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.csvURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения таблицы: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("экспорт таблицы вернул статус %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора CSV: %w", err)
	}

	if len(rows) < 2 {
		return []Record{}, nil
	}

	header := rows[0]
	data := rows[1:]
	if limit > 0 && len(data) > limit {
		data = data[len(data)-limit:]
	}

	records := make([]Record, 0, len(data))
	for _, row := range data {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
