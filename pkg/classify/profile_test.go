package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testProfiles = []Profile{
	{Name: "recruiter", Markers: []string{"hiring", "candidates", "ats"}},
	{Name: "developer", Markers: []string{"api", "sdk", "code"}},
}

func TestAssignByMarkerCount(t *testing.T) {
	a := NewProfileAssigner(testProfiles, nil)
	ctx := context.Background()

	tests := []struct {
		keyword string
		want    string
	}{
		{"ats for hiring teams", "recruiter"},
		{"api code samples", "developer"},
		{"gardening tips", GeneralProfile},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Assign(ctx, tt.keyword))
		})
	}
}

func TestAssignTieKeepsConfigOrder(t *testing.T) {
	a := NewProfileAssigner(testProfiles, nil)
	// One marker hit per profile; the earlier configured profile wins.
	assert.Equal(t, "recruiter", a.Assign(context.Background(), "hiring api"))
}

func TestAssignEmptyProfiles(t *testing.T) {
	a := NewProfileAssigner(nil, nil)
	assert.Equal(t, GeneralProfile, a.Assign(context.Background(), "anything"))
}

// fixedEmbedder returns preset vectors regardless of input text, one per
// input in order.
type fixedEmbedder struct {
	vectors [][]float64
	err     error
}

func (f *fixedEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[:len(texts)], nil
}

func TestAssignSimilarityFallback(t *testing.T) {
	// Keyword close to the recruiter markers, far from developer.
	emb := &fixedEmbedder{vectors: [][]float64{
		{1, 0},    // keyword
		{0.9, 0.1}, // recruiter markers
		{0, 1},    // developer markers
	}}
	a := NewProfileAssigner(testProfiles, emb)

	assert.Equal(t, "recruiter", a.Assign(context.Background(), "talent acquisition"))
}

func TestAssignSimilarityBelowThreshold(t *testing.T) {
	emb := &fixedEmbedder{vectors: [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
	a := NewProfileAssigner(testProfiles, emb)

	assert.Equal(t, GeneralProfile, a.Assign(context.Background(), "talent acquisition"))
}

func TestAssignEmbedderFailureFallsBackToGeneral(t *testing.T) {
	emb := &fixedEmbedder{err: errors.New("backend down")}
	a := NewProfileAssigner(testProfiles, emb)

	assert.Equal(t, GeneralProfile, a.Assign(context.Background(), "talent acquisition"))
}
