package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"seoscout/pkg/provider"
)

// Semantic embeds texts through a pretrained model behind an
// OpenAI-compatible /embeddings endpoint (hosted API or local ollama-style
// server). Model availability is checked once at construction; Embed itself
// does not silently fall back.
type Semantic struct {
	client   *http.Client
	endpoint string
	model    string
	apiKey   string
}

// NewSemantic creates the semantic provider and probes the endpoint with a
// one-token request. An unreachable or misconfigured backend surfaces here
// as provider.ErrUnavailable, not later at call time.
func NewSemantic(ctx context.Context, endpoint, model, apiKey string) (*Semantic, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("%w: no embedding endpoint configured", provider.ErrUnavailable)
	}

	s := &Semantic{
		client:   &http.Client{Timeout: 60 * time.Second},
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
	}

	if _, err := s.Embed(ctx, []string{"ping"}); err != nil {
		return nil, fmt.Errorf("%w: probe %s: %v", provider.ErrUnavailable, endpoint, err)
	}
	return s, nil
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed encodes each text into a dense vector, one per input in order.
func (s *Semantic) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(embedRequest{Model: s.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed endpoint status %d", resp.StatusCode)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embed response: %w", err)
	}
	if len(parsed.Data) != len(texts) {
		return nil, fmt.Errorf("embed endpoint returned %d vectors for %d inputs", len(parsed.Data), len(texts))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embed response index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
