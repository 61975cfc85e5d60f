package classify

import (
	"context"
	"strings"

	"seoscout/pkg/embed"
)

// GeneralProfile is returned when no configured profile matches a keyword.
const GeneralProfile = "general"

// similarityThreshold is the minimum keyword-to-marker cosine similarity for
// the embedding fallback to override the general profile.
const similarityThreshold = 0.3

// Profile is a configured audience segment with its marker words.
type Profile struct {
	Name    string   `yaml:"name"`
	Markers []string `yaml:"markers"`
}

// ProfileAssigner maps keywords onto the closest configured profile. The
// optional embedder is a similarity fallback used when no marker matches;
// nil disables it.
type ProfileAssigner struct {
	profiles []Profile
	embedder embed.Provider
}

// NewProfileAssigner creates an assigner over the configured profiles, which
// are evaluated in configuration order for tie-breaking.
func NewProfileAssigner(profiles []Profile, embedder embed.Provider) *ProfileAssigner {
	return &ProfileAssigner{profiles: profiles, embedder: embedder}
}

// Assign returns the profile whose markers occur most often in the keyword,
// ties broken by earliest configuration order. When every profile scores
// zero it tries embedding similarity against each profile's marker text and
// takes the best match above the threshold, otherwise "general". An empty
// profile set always yields "general".
func (a *ProfileAssigner) Assign(ctx context.Context, keyword string) string {
	if len(a.profiles) == 0 {
		return GeneralProfile
	}

	lower := strings.ToLower(keyword)

	best := ""
	bestScore := 0
	for _, p := range a.profiles {
		if len(p.Markers) == 0 {
			continue
		}
		score := 0
		for _, m := range p.Markers {
			score += strings.Count(lower, strings.ToLower(m))
		}
		if score > bestScore {
			best = p.Name
			bestScore = score
		}
	}
	if bestScore > 0 {
		return best
	}

	if a.embedder != nil {
		if name := a.assignBySimilarity(ctx, keyword); name != "" {
			return name
		}
	}
	return GeneralProfile
}

// assignBySimilarity embeds the keyword alongside each profile's joined
// marker words in one batch and picks the closest profile above the
// threshold. Any embedding failure just disables the fallback.
func (a *ProfileAssigner) assignBySimilarity(ctx context.Context, keyword string) string {
	texts := make([]string, 0, len(a.profiles)+1)
	texts = append(texts, keyword)
	names := make([]string, 0, len(a.profiles))
	for _, p := range a.profiles {
		if len(p.Markers) == 0 {
			continue
		}
		texts = append(texts, strings.Join(p.Markers, " "))
		names = append(names, p.Name)
	}
	if len(names) == 0 {
		return ""
	}

	vectors, err := a.embedder.Embed(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		return ""
	}

	best := ""
	bestSim := similarityThreshold
	for i, name := range names {
		if sim := embed.Cosine(vectors[0], vectors[i+1]); sim > bestSim {
			best = name
			bestSim = sim
		}
	}
	return best
}
