package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const outlineJSON = `{
  "title": "Applicant Tracking Systems: The Complete Guide",
  "meta_description": "Learn how applicant tracking systems work, what they cost, and how to pick the right one for your hiring team in this complete guide.",
  "sections": [
    {"heading": "Introduction", "level": "H2", "description": "Why tracking matters.", "word_count": 200, "key_points": ["definition", "who this is for"]},
    {"heading": "How an ATS Works", "level": "H2", "description": "Pipeline mechanics.", "word_count": 400, "key_points": ["parsing", "pipelines", "reporting"]},
    {"heading": "Conclusion", "level": "H2", "description": "Wrap up.", "word_count": 150, "key_points": ["recap", "next steps"]}
  ]
}`

func openAIServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "applicant tracking system")

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		})
	}))
}

func TestGenerateOutline(t *testing.T) {
	srv := openAIServer(t, outlineJSON)
	defer srv.Close()

	g := NewGenerator("openai", "gpt-4o-mini", "test-key", srv.URL)
	o, err := g.GenerateOutline(context.Background(), "applicant tracking system", "informational", 1500)
	require.NoError(t, err)

	assert.Equal(t, "Applicant Tracking Systems: The Complete Guide", o.Title)
	require.Len(t, o.Sections, 3)
	assert.Equal(t, "How an ATS Works", o.Sections[1].Heading)
	assert.Equal(t, 400, o.Sections[1].WordCount)
	assert.Equal(t, "applicant tracking system", o.TargetKeyword)
	assert.Equal(t, "informational", o.SearchIntent)
	assert.Equal(t, 1500, o.TargetWordCount)
	assert.NotEmpty(t, o.GeneratedAt)
	assert.False(t, o.Refined)
}

func TestGenerateOutlineStripsCodeFences(t *testing.T) {
	srv := openAIServer(t, "```json\n"+outlineJSON+"\n```")
	defer srv.Close()

	g := NewGenerator("openai", "", "test-key", srv.URL)
	o, err := g.GenerateOutline(context.Background(), "applicant tracking system", "informational", 0)
	require.NoError(t, err)
	assert.Len(t, o.Sections, 3)
	assert.Equal(t, 1500, o.TargetWordCount)
}

func TestGenerateOutlineRejectsEmptyResponse(t *testing.T) {
	srv := openAIServer(t, `{"title": "", "sections": []}`)
	defer srv.Close()

	g := NewGenerator("openai", "", "test-key", srv.URL)
	_, err := g.GenerateOutline(context.Background(), "applicant tracking system", "informational", 1500)
	assert.Error(t, err)
}

func TestGenerateOutlineEmptyKeyword(t *testing.T) {
	g := NewGenerator("openai", "", "test-key", "")
	_, err := g.GenerateOutline(context.Background(), "", "informational", 1500)
	assert.Error(t, err)
}

func TestGenerateOutlineUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGenerator("openai", "", "test-key", srv.URL)
	_, err := g.GenerateOutline(context.Background(), "crm software", "commercial", 1500)
	assert.Error(t, err)
}

func TestGenerateOutlineAnthropic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		fmt.Fprintf(w, `{"content":[{"text":%q}]}`, outlineJSON)
	}))
	defer srv.Close()

	g := NewGenerator("anthropic", "", "test-key", srv.URL)
	o, err := g.GenerateOutline(context.Background(), "applicant tracking system", "informational", 1500)
	require.NoError(t, err)
	assert.Len(t, o.Sections, 3)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("{\"a\":1}"))
	assert.Equal(t, `{"a":1}`, stripFences("  {\"a\":1}  "))
}
