package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	urlRe        = regexp.MustCompile(`(?i)[a-z][a-z0-9+.-]*://\S+|www\.\S+`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize prepares raw keyword or page text for analysis: lowercase,
// URLs and HTML tags removed, punctuation stripped, whitespace collapsed.
// It never fails; empty input yields the empty string. Applying it twice
// gives the same result as applying it once.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = urlRe.ReplaceAllString(text, " ")
	text = htmlTagRe.ReplaceAllString(text, " ")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// simple stopword list (extend as needed)
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "a": {}, "for": {}, "is": {}, "on": {}, "with": {}, "as": {},
	"by": {}, "at": {}, "from": {}, "that": {}, "this": {}, "it": {}, "an": {}, "be": {}, "or": {}, "are": {}, "was": {},
	"were": {}, "will": {}, "has": {}, "have": {}, "had": {}, "but": {}, "not": {}, "your": {}, "you": {}, "we": {},
	"our": {}, "do": {}, "does": {}, "did": {}, "can": {}, "so": {}, "if": {}, "than": {}, "too": {}, "very": {},
	"just": {}, "about": {}, "into": {}, "more": {}, "most": {}, "some": {}, "such": {}, "no": {}, "nor": {},
}

// IsStopword reports whether w is in the built-in English stopword list.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// Tokenize normalizes text and splits it into lowercase tokens, dropping
// stopwords and tokens shorter than two characters.
func Tokenize(text string) []string {
	words := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// TopWords returns the n most frequent tokens across the given texts,
// ties broken alphabetically so the result is deterministic.
func TopWords(texts []string, n int) []string {
	freq := map[string]int{}
	for _, t := range texts {
		for _, tok := range Tokenize(t) {
			freq[tok]++
		}
	}

	type kv struct {
		K string
		V int
	}
	list := make([]kv, 0, len(freq))
	for k, v := range freq {
		list = append(list, kv{k, v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].V == list[j].V {
			return list[i].K < list[j].K
		}
		return list[i].V > list[j].V
	})

	if n > len(list) {
		n = len(list)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, list[i].K)
	}
	return out
}
