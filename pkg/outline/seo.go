package outline

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SEOAnalysis grades an outline against on-page SEO heuristics.
type SEOAnalysis struct {
	KeywordInTitle           bool     `json:"keyword_in_title"`
	TitleLength              int      `json:"title_length"`
	KeywordInMetaDescription bool     `json:"keyword_in_meta_description"`
	MetaDescriptionLength    int      `json:"meta_description_length"`
	SectionCount             int      `json:"section_count"`
	Recommendations          []string `json:"recommendations"`
	SEOScore                 int      `json:"seo_score"`
}

// AnalyzeSEO checks title and meta description for keyword presence and
// length, collects recommendations, and derives a 0-100 score: fewer open
// recommendations score higher.
func AnalyzeSEO(o Outline, keyword string) SEOAnalysis {
	a := SEOAnalysis{
		KeywordInTitle:           containsFold(o.Title, keyword),
		TitleLength:              len(o.Title),
		KeywordInMetaDescription: containsFold(o.MetaDescription, keyword),
		MetaDescriptionLength:    len(o.MetaDescription),
		SectionCount:             len(o.Sections),
	}

	if !a.KeywordInTitle {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf("add the target keyword %q to the title", keyword))
	}
	if a.TitleLength < 30 {
		a.Recommendations = append(a.Recommendations, "title is under 30 characters, aim for 50-60")
	} else if a.TitleLength > 60 {
		a.Recommendations = append(a.Recommendations, "title is over 60 characters, shorten it")
	}
	if !a.KeywordInMetaDescription {
		a.Recommendations = append(a.Recommendations, fmt.Sprintf("add the target keyword %q to the meta description", keyword))
	}
	if a.MetaDescriptionLength < 120 {
		a.Recommendations = append(a.Recommendations, "meta description is under 120 characters, aim for 150-160")
	} else if a.MetaDescriptionLength > 160 {
		a.Recommendations = append(a.Recommendations, "meta description is over 160 characters, shorten it")
	}

	switch n := len(a.Recommendations); {
	case n == 0:
		a.SEOScore = 100
	case n <= 2:
		a.SEOScore = 90 - n*5
	default:
		a.SEOScore = 80 - n*7
	}
	if a.SEOScore < 0 {
		a.SEOScore = 0
	}

	return a
}

// Refine applies the open recommendations to a copy of the outline in one
// pass: inject the keyword where missing, pad short fields, truncate long
// ones. Fixes are not re-checked against each other; callers wanting the
// updated grade run AnalyzeSEO again.
func Refine(o Outline, a SEOAnalysis, keyword string) Outline {
	refined := o

	if !a.KeywordInTitle {
		refined.Title = titleCase(keyword) + ": " + refined.Title
	} else if a.TitleLength < 30 {
		refined.Title += " - Complete Guide & Best Practices"
	} else if a.TitleLength > 60 {
		refined.Title = refined.Title[:57] + "..."
	}

	if !a.KeywordInMetaDescription {
		refined.MetaDescription = fmt.Sprintf("Learn about %s in our guide. %s", keyword, refined.MetaDescription)
	} else if a.MetaDescriptionLength < 120 {
		refined.MetaDescription += " Discover expert tips, strategies, and tools to get better results."
	} else if a.MetaDescriptionLength > 160 {
		refined.MetaDescription = refined.MetaDescription[:157] + "..."
	}

	refined.GeneratedAt = time.Now().UTC().Format("2006-01-02")
	refined.Refined = true
	return refined
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
