package matching

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SimilarityThreshold is the ratio two terms must exceed to count as similar.
const SimilarityThreshold = 0.6

const minEditLength = 4

var (
	reVersion    = regexp.MustCompile(`\s+\d+(\.\d+)*`)
	reTechSuffix = regexp.MustCompile(`\s+(framework|library|language|platform)$`)
	reSymbols    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// HasSimilarTerm reports whether list holds a term close enough to term.
// Cheap checks run first; edit distance is the last resort.
func (c *Catalogue) HasSimilarTerm(term string, list []string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return false
	}
	for _, other := range list {
		if strings.ToLower(strings.TrimSpace(other)) == t {
			return true
		}
	}
	for _, other := range list {
		o := strings.ToLower(strings.TrimSpace(other))
		if o == "" {
			continue
		}
		if strings.Contains(o, t) || strings.Contains(t, o) {
			if lengthRatio(t, o) > SimilarityThreshold {
				return true
			}
		}
	}
	for _, other := range list {
		if c.termSimilarity(t, other) > SimilarityThreshold {
			return true
		}
	}
	return false
}

func (c *Catalogue) termSimilarity(a, b string) float64 {
	ca, cb := c.coreName(a), c.coreName(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1
	}
	if isAcronymMatch(stripSymbols(ca), stripSymbols(cb)) {
		return 1
	}
	if c.areVariants(ca, cb) {
		return 0.9
	}
	// a single edit between three-letter names ("git", "gin") is a different tool
	if utf8.RuneCountInString(ca) < minEditLength || utf8.RuneCountInString(cb) < minEditLength {
		return 0
	}
	return editRatio(ca, cb)
}

// coreName strips vendor prefixes, versions and generic suffixes. Symbols are
// kept so that "c#" and "c++" stay distinct.
func (c *Catalogue) coreName(term string) string {
	n := strings.ToLower(strings.TrimSpace(term))
	for _, prefix := range c.vendorPrefixes {
		n = strings.TrimPrefix(n, prefix)
	}
	n = reVersion.ReplaceAllString(n, "")
	n = reTechSuffix.ReplaceAllString(n, "")
	n = reSpaces.ReplaceAllString(n, " ")
	return strings.TrimSpace(n)
}

func stripSymbols(s string) string {
	s = reSymbols.ReplaceAllString(s, "")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// isAcronymMatch reports whether the short term abbreviates the long one,
// as "nlp" does "natural language processing".
func isAcronymMatch(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	switch {
	case la == 0 || lb == 0:
		return false
	case la <= 5 && lb <= 5:
		return false
	case la <= 5:
		return a == acronym(b)
	case lb <= 5:
		return b == acronym(a)
	}
	return false
}

func acronym(phrase string) string {
	var b strings.Builder
	for _, word := range strings.Fields(phrase) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(r)
	}
	return b.String()
}

func (c *Catalogue) areVariants(a, b string) bool {
	ga, okA := c.variantGroup[compactTerm(a)]
	gb, okB := c.variantGroup[compactTerm(b)]
	return okA && okB && ga == gb
}

// compactTerm drops the separators that differ between spellings of one name.
func compactTerm(s string) string {
	return strings.NewReplacer("-", "", ".", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func lengthRatio(a, b string) float64 {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la > lb {
		la, lb = lb, la
	}
	if lb == 0 {
		return 0
	}
	return float64(la) / float64(lb)
}

// editRatio is 1 - levenshtein(a, b) / max(len(a), len(b)).
func editRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
