package textutil

import (
	"sort"
	"strings"
)

// TopPhrases extracts the n most repeated bigrams and trigrams from text.
// Phrases appearing only once are dropped; ties break alphabetically.
func TopPhrases(text string, n int) []string {
	words := strings.Fields(Normalize(text))

	freq := map[string]int{}
	for i := 0; i+1 < len(words); i++ {
		freq[words[i]+" "+words[i+1]]++
		if i+2 < len(words) {
			freq[words[i]+" "+words[i+1]+" "+words[i+2]]++
		}
	}

	type kv struct {
		K string
		V int
	}
	var list []kv
	for k, v := range freq {
		if v > 1 {
			list = append(list, kv{k, v})
		}
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
