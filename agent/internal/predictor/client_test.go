package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zakariahaider14/ChurnSense-EmpowHer25/agent/internal/sheets"
)

func testRecords() []sheets.Record {
	return []sheets.Record{
		{"Contract": "Month-to-month", "tenure": "1"},
		{"Contract": "Two year", "tenure": "60"},
	}
}

func TestPredictChurn(t *testing.T) {
	p1, p2 := 0.7, 0.1
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/churn/predict", r.URL.Path)

		var records []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&records))
		require.Len(t, records, 2)

		json.NewEncoder(w).Encode(PredictResponse{
			BatchID:      "b-1",
			ModelVersion: "test-1",
			Count:        2,
			Succeeded:    2,
			Results: []RecordResult{
				{Index: 0, Status: "ok", ChurnProbability: &p1},
				{Index: 1, Status: "ok", ChurnProbability: &p2},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	resp, err := client.PredictChurn(context.Background(), testRecords())
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 0.7, *resp.Results[0].ChurnProbability)
}

func TestPredictChurn_SignsServiceToken(t *testing.T) {
	const secret = "shared-secret"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		require.True(t, strings.HasPrefix(auth, "Bearer "), "ожидали bearer токен")

		token, err := jwt.Parse(strings.TrimPrefix(auth, "Bearer "), func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "sheets-agent", claims["caller"])

		json.NewEncoder(w).Encode(PredictResponse{
			Results: []RecordResult{{Index: 0, Status: "failed", ErrorCode: "missing_field"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, secret, 5*time.Second)

	_, err := client.PredictChurn(context.Background(), []sheets.Record{{"tenure": "1"}})
	require.NoError(t, err)
}

func TestPredictChurn_ResultCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(PredictResponse{
			Results: []RecordResult{{Index: 0, Status: "ok"}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	_, err := client.PredictChurn(context.Background(), testRecords())
	require.Error(t, err)
}

func TestPredictChurn_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model backend error"}`, http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	_, err := client.PredictChurn(context.Background(), testRecords())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
