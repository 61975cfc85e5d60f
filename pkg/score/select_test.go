package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seoscout/pkg/cluster"
	"seoscout/pkg/provider"
)

func assignment(text string, volume int, cpc float64, label string) cluster.Assignment {
	return cluster.Assignment{
		Keyword: provider.KeywordRecord{Text: text, Volume: volume, CPC: cpc},
		Label:   label,
	}
}

func TestTopNByVolume(t *testing.T) {
	assignments := []cluster.Assignment{
		assignment("hiring software", 1000, 2.5, "hiring"),
		assignment("hiring tools", 800, 1.0, "hiring"),
		assignment("python course", 600, 0.5, "python"),
		assignment("python bootcamp", 500, 4.0, "python"),
		assignment("hiring platform", 400, 3.0, "hiring"),
		assignment("python tutorial", 300, 0.1, "python"),
	}

	top := TopN(assignments, MetricVolume, 2)
	require.Len(t, top, 2)
	assert.Equal(t, []string{"hiring software", "hiring tools"}, top["hiring"])
	assert.Equal(t, []string{"python course", "python bootcamp"}, top["python"])
}

func TestTopNByCPC(t *testing.T) {
	assignments := []cluster.Assignment{
		assignment("a", 10, 1.0, "g"),
		assignment("b", 20, 3.0, "g"),
		assignment("c", 30, 2.0, "g"),
	}

	top := TopN(assignments, MetricCPC, 2)
	assert.Equal(t, []string{"b", "c"}, top["g"])
}

func TestTopNUnknownMetricKeepsInputOrder(t *testing.T) {
	assignments := []cluster.Assignment{
		assignment("low", 10, 0, "g"),
		assignment("high", 100, 0, "g"),
	}

	top := TopN(assignments, "made-up", 5)
	assert.Equal(t, []string{"low", "high"}, top["g"])
}

func TestTopNTiesKeepInputOrder(t *testing.T) {
	assignments := []cluster.Assignment{
		assignment("first", 100, 0, "g"),
		assignment("second", 100, 0, "g"),
		assignment("third", 100, 0, "g"),
	}

	top := TopN(assignments, MetricVolume, 3)
	assert.Equal(t, []string{"first", "second", "third"}, top["g"])
}

func TestTopNLargerThanGroup(t *testing.T) {
	assignments := []cluster.Assignment{
		assignment("only", 10, 0, "g"),
	}

	top := TopN(assignments, MetricVolume, 5)
	assert.Equal(t, []string{"only"}, top["g"])
}

func TestTopNEmpty(t *testing.T) {
	assert.Empty(t, TopN(nil, MetricVolume, 5))
}

func TestTopNDefaultsN(t *testing.T) {
	assignments := make([]cluster.Assignment, 0, 8)
	for _, kw := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		assignments = append(assignments, assignment(kw, 1, 0, "g"))
	}

	top := TopN(assignments, MetricVolume, 0)
	assert.Len(t, top["g"], 5)
}
