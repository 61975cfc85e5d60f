// Package classify assigns search intent and audience profile to keywords
// using marker-word heuristics.
package classify

import "strings"

// Intent is the presumed purpose behind a search query.
type Intent string

const (
	IntentInformational Intent = "informational"
	IntentNavigational  Intent = "navigational"
	IntentCommercial    Intent = "commercial"
	IntentTransactional Intent = "transactional"
)

// Marker sets are checked in fixed priority order: informational beats
// navigational beats commercial beats transactional when markers overlap
// (e.g. "best way to buy ...").
var intentMarkers = []struct {
	intent  Intent
	markers []string
}{
	{IntentInformational, []string{"what", "how", "why", "guide", "tutorial", "tips", "learn"}},
	{IntentNavigational, []string{"login", "sign in", "website", "official", "download"}},
	{IntentCommercial, []string{"best", "top", "review", "compare", "vs", "versus"}},
	{IntentTransactional, []string{"buy", "price", "deal", "discount", "purchase", "free", "trial"}},
}

var questionWords = []string{"who", "when", "where", "which", "can", "does", "is", "are"}

// ClassifyIntent returns the intent of a keyword. It is total and
// side-effect-free; keywords matching no marker set default to
// informational, with a leading question word as a secondary signal.
func ClassifyIntent(keyword string) Intent {
	lower := strings.ToLower(keyword)
	words := strings.Fields(lower)

	contains := func(marker string) bool {
		if strings.Contains(marker, " ") {
			return strings.Contains(lower, marker)
		}
		for _, w := range words {
			if w == marker {
				return true
			}
		}
		return false
	}

	for _, set := range intentMarkers {
		for _, m := range set.markers {
			if contains(m) {
				return set.intent
			}
		}
	}

	if len(words) > 0 {
		for _, q := range questionWords {
			if words[0] == q {
				return IntentInformational
			}
		}
	}

	return IntentInformational
}
