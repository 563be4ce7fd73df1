package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPScorer_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/score", r.URL.Path)

		var req ScoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Instances, 2)

		// По одной вероятности на строку, в том же порядке
		json.NewEncoder(w).Encode(ScoreResponse{Probabilities: []float64{0.12, 0.87}})
	}))
	defer server.Close()

	scorer := NewHTTPScorer(server.URL, 5*time.Second)
	probs, err := scorer.Score(context.Background(), [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.12, 0.87}, probs)
}

func TestHTTPScorer_BackendFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
		},
		{
			name: "row count mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(ScoreResponse{Probabilities: []float64{0.5}})
			},
		},
		{
			name: "probability out of range",
			handler: func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(ScoreResponse{Probabilities: []float64{0.5, 1.7}})
			},
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			scorer := NewHTTPScorer(server.URL, 5*time.Second)
			_, err := scorer.Score(context.Background(), [][]float64{{1}, {2}})

			var backendErr *Error
			require.ErrorAs(t, err, &backendErr)
		})
	}
}

func TestHTTPScorer_UnreachableBackend(t *testing.T) {
	scorer := NewHTTPScorer("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := scorer.Score(context.Background(), [][]float64{{1}})

	var backendErr *Error
	require.ErrorAs(t, err, &backendErr)
}
