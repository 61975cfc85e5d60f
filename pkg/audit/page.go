package audit

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"seoscout/pkg/textutil"
)

// PageAnalysis summarizes one competitor page's content.
type PageAnalysis struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	H1              []string `json:"h1"`
	H2              []string `json:"h2"`
	H3              []string `json:"h3"`
	WordCount       int      `json:"word_count"`
	ImageCount      int      `json:"image_count"`
	InternalLinks   int      `json:"internal_links"`
	ExternalLinks   int      `json:"external_links"`
	TopPhrases      []string `json:"top_phrases"`
	KeywordDensity  float64  `json:"keyword_density,omitempty"`
}

var pageClient = &http.Client{Timeout: 30 * time.Second}

// AnalyzePage fetches a competitor page and extracts title, meta
// description, headings, body stats and repeated phrases. When
// targetKeyword is non-empty, keyword density (occurrences per 100 words)
// is included.
func (a *Auditor) AnalyzePage(ctx context.Context, pageURL, targetKeyword string) (PageAnalysis, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return PageAnalysis{}, fmt.Errorf("create page request %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", "seoscout/1.0")

	resp, err := pageClient.Do(req)
	if err != nil {
		return PageAnalysis{}, fmt.Errorf("fetch page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PageAnalysis{}, fmt.Errorf("page %s status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return PageAnalysis{}, fmt.Errorf("parse page %s: %w", pageURL, err)
	}

	return a.analyzeDocument(doc, pageURL, targetKeyword), nil
}

func (a *Auditor) analyzeDocument(doc *goquery.Document, pageURL, targetKeyword string) PageAnalysis {
	doc.Find("script,noscript,style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	analysis := PageAnalysis{
		URL:   pageURL,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	analysis.MetaDescription = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if analysis.MetaDescription == "" {
		analysis.MetaDescription = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}

	headings := func(sel string) []string {
		var out []string
		doc.Find(sel).Each(func(i int, s *goquery.Selection) {
			if t := strings.TrimSpace(s.Text()); t != "" {
				out = append(out, t)
			}
		})
		return out
	}
	analysis.H1 = headings("h1")
	analysis.H2 = headings("h2")
	analysis.H3 = headings("h3")

	var parts []string
	doc.Find("p,li").Each(func(i int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	text := strings.Join(parts, " ")
	analysis.WordCount = len(strings.Fields(text))
	analysis.TopPhrases = textutil.TopPhrases(text, 10)

	analysis.ImageCount = doc.Find("img").Length()
	host := hostOf(pageURL)
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		linkHost := hostOf(href)
		switch {
		case linkHost == "" || linkHost == host:
			analysis.InternalLinks++
		default:
			analysis.ExternalLinks++
		}
	})

	if targetKeyword != "" && analysis.WordCount > 0 {
		occurrences := strings.Count(textutil.Normalize(text), textutil.Normalize(targetKeyword))
		analysis.KeywordDensity = float64(occurrences) / float64(analysis.WordCount) * 100
	}

	return analysis
}
