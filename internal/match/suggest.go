package match

import "sort"

// DefaultMinScore is the minimum similarity for a candidate to be suggested.
const DefaultMinScore = 0.6

// DefaultMaxSuggestions bounds the number of suggestions returned.
const DefaultMaxSuggestions = 3

type scored struct {
	name  string
	score float64
	index int
}

// Suggest returns the candidates most similar to name, best first.
// Candidates scoring below minScore are dropped. Ties keep the candidate
// order so results are deterministic.
func Suggest(name string, candidates []string, minScore float64, maxResults int) []string {
	if name == "" || maxResults <= 0 {
		return nil
	}

	var ranked []scored

	for i, c := range candidates {
		if c == name {
			continue
		}

		s := caseInsensitiveScore(name, c)
		if s < minScore {
			continue
		}

		ranked = append(ranked, scored{name: c, score: s, index: i})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}

		return ranked[i].index < ranked[j].index
	})

	var out []string
	for _, r := range ranked {
		if len(out) == maxResults {
			break
		}

		out = append(out, r.name)
	}

	return out
}

// SuggestDefault is Suggest with the package defaults.
func SuggestDefault(name string, candidates []string) []string {
	return Suggest(name, candidates, DefaultMinScore, DefaultMaxSuggestions)
}
