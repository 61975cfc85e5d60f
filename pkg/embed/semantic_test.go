package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoscout/pkg/provider"
)

func fakeEmbeddingServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		var resp embedResponse
		for i := range req.Input {
			resp.Data = append(resp.Data, struct {
				Index     int       `json:"index"`
				Embedding []float64 `json:"embedding"`
			}{Index: i, Embedding: []float64{float64(i), 1}})
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSemanticEmbed(t *testing.T) {
	srv := fakeEmbeddingServer(t)
	defer srv.Close()

	s, err := NewSemantic(context.Background(), srv.URL, "test-model", "")
	require.NoError(t, err)

	vectors, err := s.Embed(context.Background(), []string{"crm software", "ats tools"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{0, 1}, vectors[0])
	assert.Equal(t, []float64{1, 1}, vectors[1])
}

func TestNewSemanticProbeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewSemantic(context.Background(), srv.URL, "test-model", "")
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestNewSemanticNoEndpoint(t *testing.T) {
	_, err := NewSemantic(context.Background(), "", "test-model", "")
	assert.ErrorIs(t, err, provider.ErrUnavailable)
}

func TestSemanticEmbedCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{1}}},
		})
	}))
	defer srv.Close()

	s, err := NewSemantic(context.Background(), srv.URL, "test-model", "")
	require.NoError(t, err)

	_, err = s.Embed(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}
