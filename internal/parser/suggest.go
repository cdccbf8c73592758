package parser

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxSuggestDistance bounds the edit distance of a suggestion when the
// unknown word is not a subsequence of any directive.
const maxSuggestDistance = 3

// suggest returns the known directive closest to word, or "".
func suggest(word string) string {
	if word == "" {
		return ""
	}
	names := DirectiveNames()
	if ranks := fuzzy.RankFindFold(word, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, name := range names {
		if d := fuzzy.LevenshteinDistance(word, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}
