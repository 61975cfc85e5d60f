package score

import (
	"sort"

	"seoscout/pkg/cluster"
)

// Known metrics for TopN. Any other metric name falls back to input order.
const (
	MetricVolume      = "volume"
	MetricCPC         = "cpc"
	MetricCompetition = "competition"
)

// TopN extracts the top n keywords per cluster label, sorted descending by
// the named metric with ties kept in original input order. Unknown metrics
// skip sorting; zero clusters yield an empty map; n larger than a group
// returns the whole group.
func TopN(assignments []cluster.Assignment, metric string, n int) map[string][]string {
	if n <= 0 {
		n = 5
	}

	groups := map[string][]cluster.Assignment{}
	var order []string
	for _, a := range assignments {
		if _, ok := groups[a.Label]; !ok {
			order = append(order, a.Label)
		}
		groups[a.Label] = append(groups[a.Label], a)
	}

	metricValue := metricFunc(metric)

	top := make(map[string][]string, len(order))
	for _, label := range order {
		members := groups[label]
		if metricValue != nil {
			sort.SliceStable(members, func(i, j int) bool {
				return metricValue(members[i]) > metricValue(members[j])
			})
		}

		limit := n
		if limit > len(members) {
			limit = len(members)
		}
		keywords := make([]string, 0, limit)
		for _, a := range members[:limit] {
			keywords = append(keywords, a.Keyword.Text)
		}
		top[label] = keywords
	}
	return top
}

func metricFunc(metric string) func(cluster.Assignment) float64 {
	switch metric {
	case MetricVolume:
		return func(a cluster.Assignment) float64 { return float64(a.Keyword.Volume) }
	case MetricCPC:
		return func(a cluster.Assignment) float64 { return a.Keyword.CPC }
	case MetricCompetition:
		return func(a cluster.Assignment) float64 { return a.Keyword.Competition }
	default:
		return nil
	}
}
