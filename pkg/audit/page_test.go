package audit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageHTML = `<html>
<head>
  <title>Best ATS Software</title>
  <meta name="description" content="Compare the best ATS.">
</head>
<body>
  <h1>Best ATS Software</h1>
  <h2>Pricing</h2>
  <p>ats software for recruiters. ats software pricing guide.</p>
  <p>choose ats software today</p>
  <img src="a.png">
  <a href="/pricing">pricing</a>
  <a href="https://other.com/review">review</a>
  <script>var tracked = true;</script>
</body>
</html>`

func testAuditor() *Auditor {
	return New("example.com", nil, nil, nil, zerolog.Nop())
}

func TestAnalyzeDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(testPageHTML))
	require.NoError(t, err)

	got := testAuditor().analyzeDocument(doc, "https://example.com/ats", "ats software")

	assert.Equal(t, "Best ATS Software", got.Title)
	assert.Equal(t, "Compare the best ATS.", got.MetaDescription)
	assert.Equal(t, []string{"Best ATS Software"}, got.H1)
	assert.Equal(t, []string{"Pricing"}, got.H2)
	assert.Empty(t, got.H3)

	// Body words come from p and li only; the script is removed first.
	assert.Equal(t, 12, got.WordCount)
	assert.Equal(t, []string{"ats software"}, got.TopPhrases)

	assert.Equal(t, 1, got.ImageCount)
	assert.Equal(t, 1, got.InternalLinks)
	assert.Equal(t, 1, got.ExternalLinks)

	// "ats software" occurs 3 times in 12 words.
	assert.InDelta(t, 25.0, got.KeywordDensity, 1e-9)
}

func TestAnalyzeDocumentOGDescriptionFallback(t *testing.T) {
	html := `<html><head><meta property="og:description" content="From opengraph."></head><body></body></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	got := testAuditor().analyzeDocument(doc, "https://example.com", "")
	assert.Equal(t, "From opengraph.", got.MetaDescription)
	assert.Zero(t, got.KeywordDensity)
}

func TestAnalyzePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testPageHTML)
	}))
	defer srv.Close()

	got, err := testAuditor().AnalyzePage(context.Background(), srv.URL, "")
	require.NoError(t, err)
	assert.Equal(t, "Best ATS Software", got.Title)
	assert.Equal(t, srv.URL, got.URL)
}

func TestAnalyzePageNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testAuditor().AnalyzePage(context.Background(), srv.URL, "")
	assert.Error(t, err)
}
