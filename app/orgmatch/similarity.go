package orgmatch

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// TokenSetSimilarity scores two strings on a 0-100 scale by comparing
// their sorted distinct token sets with Jaro-Winkler, which makes the
// score insensitive to token order and repetition.
func TokenSetSimilarity(a, b string) float64 {
	sa := tokenSetString(a)
	sb := tokenSetString(b)
	if sa == "" || sb == "" {
		return 0.0
	}
	return 100.0 * matchr.JaroWinkler(sa, sb, false)
}

// JaccardSimilarity is a deterministic fallback similarity based on token
// overlap, scaled to 0-100. It has no external dependencies and can stand
// in for TokenSetSimilarity when a coarser score is acceptable.
func JaccardSimilarity(a, b string) float64 {
	sa := tokenSet(a)
	sb := tokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0.0
	}
	inter := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	return 100.0 * float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

func tokenSetString(s string) string {
	set := tokenSet(s)
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
