package cluster

import (
	"fmt"
	"strings"

	"seoscout/pkg/provider"
	"seoscout/pkg/textutil"
)

// UnclusteredLabel names the sentinel noise group.
const UnclusteredLabel = "Unclustered"

// buildLabels generates a human-readable label per cluster id: the three
// most frequent normalized words across member keywords, the keyword itself
// for singleton groups, and the fixed noise label for the sentinel.
func buildLabels(records []provider.KeywordRecord, ids []int) map[int]string {
	members := map[int][]string{}
	for i, id := range ids {
		members[id] = append(members[id], records[i].Text)
	}

	labels := make(map[int]string, len(members))
	for id, texts := range members {
		switch {
		case id == Unclustered:
			labels[id] = UnclusteredLabel
		case len(texts) == 1:
			labels[id] = texts[0]
		default:
			top := textutil.TopWords(texts, 3)
			if len(top) == 0 {
				labels[id] = fmt.Sprintf("Cluster %d", id)
			} else {
				labels[id] = strings.Join(top, " ")
			}
		}
	}
	return labels
}

// Annotate appends majority intent and profile to a cluster label, e.g.
// "recruit software platform (commercial, recruiter)". The sentinel label is
// never annotated.
func Annotate(label, intent, profile string) string {
	if label == UnclusteredLabel || (intent == "" && profile == "") {
		return label
	}
	switch {
	case intent == "":
		return fmt.Sprintf("%s (%s)", label, profile)
	case profile == "":
		return fmt.Sprintf("%s (%s)", label, intent)
	default:
		return fmt.Sprintf("%s (%s, %s)", label, intent, profile)
	}
}
