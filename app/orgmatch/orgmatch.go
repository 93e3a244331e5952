// Package orgmatch classifies employer/title pairs into canonical
// organization tags. Matching is accent- and punctuation-insensitive and
// follows a fixed precedence: exact tag, synonym phrase, token prefix,
// optional fuzzy similarity, then a title-based fallback.
package orgmatch

import (
	"strings"

	"github.com/kaslund/statjobs/app/textnorm"
)

// Canonical organization tags.
const (
	OrgForsvar = "forsvar"
	OrgPST     = "pst"
	OrgNSM     = "nsm"
)

// TokenPrefixForsvar matches any employer token starting with "forsvar",
// covering Forsvaret, Forsvarsbygg, Forsvarsmateriell and similar.
const TokenPrefixForsvar = "forsvar"

// Synonym phrases in normalized form. PST and NSM are matched by full
// phrase containment, Forsvar* by token prefix.
var (
	synonymsPST = []string{"pst", "politiets sikkerhetstjeneste"}
	synonymsNSM = []string{"nsm", "nasjonal sikkerhetsmyndighet"}
)

// SimilarityFunc scores two normalized strings on a 0-100 scale.
// Implementations must be deterministic.
type SimilarityFunc func(a, b string) float64

// Matcher holds the matching configuration. A zero FuzzyThreshold disables
// fuzzy matching entirely.
type Matcher struct {
	similarity     SimilarityFunc
	fuzzyThreshold float64
}

// Options configures a Matcher.
type Options struct {
	// Similarity overrides the default token-set similarity function.
	Similarity SimilarityFunc
	// FuzzyThreshold enables fuzzy matching when > 0, on a 0..1 scale
	// compared against similarity scores divided by 100.
	FuzzyThreshold float64
}

func NewMatcher(opts Options) *Matcher {
	sim := opts.Similarity
	if sim == nil {
		sim = TokenSetSimilarity
	}
	return &Matcher{
		similarity:     sim,
		fuzzyThreshold: opts.FuzzyThreshold,
	}
}

// Match returns the organization tag for an employer/title pair along with
// a provenance tag naming the rule that produced it. The returned tag is
// empty when nothing matched (provenance "none").
//
// Precedence, first match wins, all comparisons on normalized text:
//  1. employer equals a canonical tag            -> employer_exact
//  2. employer contains a PST/NSM synonym phrase -> employer_synonym
//  3. any employer token has the forsvar prefix  -> employer_prefix
//  4. fuzzy similarity above threshold           -> employer_fuzzy_<tag>
//  5. state-sector fallback on title tokens      -> title_prefix_forsvar
func (m *Matcher) Match(employer, title string, stateSectorApplied bool) (string, string) {
	empNorm := textnorm.Normalize(employer)

	if empNorm != "" {
		switch empNorm {
		case OrgPST:
			return OrgPST, "employer_exact"
		case OrgNSM:
			return OrgNSM, "employer_exact"
		case OrgForsvar:
			return OrgForsvar, "employer_exact"
		}

		if containsAnyPhrase(empNorm, synonymsPST) {
			return OrgPST, "employer_synonym"
		}
		if containsAnyPhrase(empNorm, synonymsNSM) {
			return OrgNSM, "employer_synonym"
		}

		if hasForsvarPrefix(strings.Split(empNorm, " ")) {
			return OrgForsvar, "employer_prefix"
		}

		if m.fuzzyThreshold > 0 {
			if tag, prov := m.matchFuzzy(empNorm); tag != "" {
				return tag, prov
			}
		}
	}

	// Title fallback applies only under the state-sector filter and only
	// for the forsvar prefix.
	if stateSectorApplied && title != "" {
		if hasForsvarPrefix(textnorm.Tokenize(title)) {
			return OrgForsvar, "title_prefix_forsvar"
		}
	}

	return "", "none"
}

// matchFuzzy scores the employer against each candidate phrase set and
// returns the best tag when it reaches the threshold. Ties resolve in
// pst, nsm, forsvar order.
func (m *Matcher) matchFuzzy(empNorm string) (string, string) {
	pstScore := bestScore(m.similarity, empNorm, synonymsPST)
	nsmScore := bestScore(m.similarity, empNorm, synonymsNSM)
	forsvarScore := m.similarity(empNorm, OrgForsvar)

	best := max(pstScore, nsmScore, forsvarScore)
	if best < m.fuzzyThreshold*100.0 {
		return "", ""
	}
	switch best {
	case pstScore:
		return OrgPST, "employer_fuzzy_pst"
	case nsmScore:
		return OrgNSM, "employer_fuzzy_nsm"
	default:
		return OrgForsvar, "employer_fuzzy_forsvar"
	}
}

func containsAnyPhrase(haystack string, phrases []string) bool {
	for _, p := range phrases {
		if p != "" && strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}

func hasForsvarPrefix(tokens []string) bool {
	for _, tok := range tokens {
		if strings.HasPrefix(tok, TokenPrefixForsvar) {
			return true
		}
	}
	return false
}

func bestScore(sim SimilarityFunc, text string, phrases []string) float64 {
	best := 0.0
	for _, p := range phrases {
		if score := sim(text, p); score > best {
			best = score
		}
	}
	return best
}
