package matching

import "strings"

// TechnicalSkills lists catalogue terms found in text, then pattern matches,
// in discovery order and without duplicates.
func (c *Catalogue) TechnicalSkills(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return
		}
		if _, ok := seen[skill]; ok {
			return
		}
		seen[skill] = struct{}{}
		out = append(out, skill)
	}

	for _, m := range c.technical {
		if m.re.MatchString(text) {
			add(m.term)
		}
	}
	lower := strings.ToLower(text)
	for _, re := range c.patterns {
		for _, match := range re.FindAllString(lower, -1) {
			add(match)
		}
	}
	return out
}

// SoftSkills lists catalogue soft skills mentioned anywhere in text. Hyphen
// and space spellings of one skill are reported once.
func (c *Catalogue) SoftSkills(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	seen := make(map[string]struct{})
	for _, skill := range c.soft {
		spaced := strings.ReplaceAll(skill, "-", " ")
		if _, ok := seen[spaced]; ok {
			continue
		}
		if strings.Contains(lower, skill) || strings.Contains(lower, spaced) {
			seen[spaced] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

// Missing returns the entries of want that have no similar term in have.
func (c *Catalogue) Missing(want, have []string) []string {
	out := []string{}
	for _, w := range want {
		if !c.HasSimilarTerm(w, have) {
			out = append(out, w)
		}
	}
	return out
}
