// Package outline generates SEO-optimized blog post outlines for target
// keywords through an LLM, then analyzes and refines them against on-page SEO
// heuristics.
package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const outlinePrompt = `You are an SEO content strategist. Create a blog post outline for the target keyword below.

Target keyword: %s
Search intent: %s
Target word count: %d

Requirements:
- A title of 50-60 characters containing the target keyword.
- A meta description of 150-160 characters containing the target keyword.
- 5-7 sections covering the topic from introduction to conclusion, matching the search intent.
- Per section: a heading, the heading level ("H2" or "H3"), a one-sentence description, a word count budget, and 3-5 key points.
- Section word counts should add up close to the target word count.

Respond with a single JSON object:
{"title":"...","meta_description":"...","sections":[{"heading":"...","level":"H2","description":"...","word_count":300,"key_points":["..."]}]}

Return ONLY the JSON object, no other text.`

// Section is one planned section of a blog post outline.
type Section struct {
	Heading     string   `json:"heading"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	WordCount   int      `json:"word_count"`
	KeyPoints   []string `json:"key_points"`
}

// Outline is an SEO-optimized blog post plan for one target keyword.
type Outline struct {
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Sections        []Section `json:"sections"`
	TargetKeyword   string    `json:"target_keyword"`
	SearchIntent    string    `json:"search_intent"`
	TargetWordCount int       `json:"target_word_count"`
	GeneratedAt     string    `json:"date_generated"`
	Refined         bool      `json:"refined,omitempty"`
}

// Generator produces outlines through an LLM chat endpoint.
type Generator struct {
	client   *http.Client
	provider string // "openai" or "anthropic"
	model    string
	apiKey   string
	baseURL  string
}

// NewGenerator creates an outline generator. An empty model falls back to a
// per-provider default.
func NewGenerator(provider, model, apiKey, baseURL string) *Generator {
	if model == "" {
		switch provider {
		case "anthropic":
			model = "claude-sonnet-4-20250514"
		default:
			model = "gpt-4o-mini"
		}
	}
	return &Generator{
		client:   &http.Client{Timeout: 60 * time.Second},
		provider: provider,
		model:    model,
		apiKey:   apiKey,
		baseURL:  baseURL,
	}
}

// GenerateOutline asks the LLM for a structured outline targeting the keyword
// and intent, and stamps the result with the generation metadata.
func (g *Generator) GenerateOutline(ctx context.Context, keyword, intent string, targetWords int) (Outline, error) {
	if keyword == "" {
		return Outline{}, fmt.Errorf("outline: empty keyword")
	}
	if targetWords <= 0 {
		targetWords = 1500
	}

	prompt := fmt.Sprintf(outlinePrompt, keyword, intent, targetWords)

	var raw string
	var err error
	switch g.provider {
	case "anthropic":
		raw, err = g.callAnthropic(ctx, prompt)
	default:
		raw, err = g.callOpenAI(ctx, prompt)
	}
	if err != nil {
		return Outline{}, err
	}

	var o Outline
	if err := json.Unmarshal([]byte(stripFences(raw)), &o); err != nil {
		return Outline{}, fmt.Errorf("parse outline response: %w", err)
	}
	if o.Title == "" || len(o.Sections) == 0 {
		return Outline{}, fmt.Errorf("outline response missing title or sections")
	}

	o.TargetKeyword = keyword
	o.SearchIntent = intent
	o.TargetWordCount = targetWords
	o.GeneratedAt = time.Now().UTC().Format("2006-01-02")
	return o, nil
}

func (g *Generator) callOpenAI(ctx context.Context, prompt string) (string, error) {
	baseURL := g.baseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	payload := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.3,
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create openai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]any
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("openai status %d: %v", resp.StatusCode, errResp)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return result.Choices[0].Message.Content, nil
}

func (g *Generator) callAnthropic(ctx context.Context, prompt string) (string, error) {
	baseURL := g.baseURL
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}

	payload := map[string]any{
		"model":      g.model,
		"max_tokens": 4096,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create anthropic request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call anthropic: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp map[string]any
		json.NewDecoder(resp.Body).Decode(&errResp)
		return "", fmt.Errorf("anthropic status %d: %v", resp.StatusCode, errResp)
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(result.Content) == 0 {
		return "", fmt.Errorf("anthropic: no content returned")
	}
	return result.Content[0].Text, nil
}

// stripFences removes a markdown code block wrapper some models add around
// JSON responses.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if idx := strings.Index(raw[3:], "\n"); idx >= 0 {
			raw = raw[3+idx+1:]
		}
		if strings.HasSuffix(raw, "```") {
			raw = raw[:len(raw)-3]
		}
		raw = strings.TrimSpace(raw)
	}
	return raw
}
