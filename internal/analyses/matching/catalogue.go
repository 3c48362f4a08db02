package matching

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogue.yaml
var defaultCatalogueYAML []byte

type categoryDef struct {
	Category string   `yaml:"category"`
	Terms    []string `yaml:"terms"`
}

type catalogueFile struct {
	Technical        []categoryDef `yaml:"technical"`
	Patterns         []string      `yaml:"patterns"`
	Soft             []string      `yaml:"soft"`
	Variants         [][]string    `yaml:"variants"`
	VendorPrefixes   []string      `yaml:"vendor_prefixes"`
	AchievementWords []string      `yaml:"achievement_words"`
	ImpactVerbs      []string      `yaml:"impact_verbs"`
	Sentiment        struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"sentiment"`
}

type termMatcher struct {
	term string
	re   *regexp.Regexp
}

// Catalogue is the compiled vocabulary the matcher works from.
type Catalogue struct {
	technical        []termMatcher
	patterns         []*regexp.Regexp
	soft             []string
	variantGroup     map[string]int
	vendorPrefixes   []string
	achievementWords map[string]struct{}
	impactVerbs      map[string]struct{}
	positive         map[string]struct{}
	negative         map[string]struct{}
}

// DefaultCatalogue compiles the embedded catalogue. It panics on a broken
// embed since that can only be a build defect.
func DefaultCatalogue() *Catalogue {
	cat, err := ParseCatalogue(defaultCatalogueYAML)
	if err != nil {
		panic(fmt.Sprintf("matching: embedded catalogue: %v", err))
	}
	return cat
}

// ParseCatalogue compiles a catalogue from YAML.
func ParseCatalogue(data []byte) (*Catalogue, error) {
	var file catalogueFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	if len(file.Technical) == 0 {
		return nil, fmt.Errorf("parse catalogue: no technical terms")
	}

	cat := &Catalogue{
		soft:             make([]string, 0, len(file.Soft)),
		variantGroup:     make(map[string]int),
		vendorPrefixes:   file.VendorPrefixes,
		achievementWords: toSet(file.AchievementWords),
		impactVerbs:      toSet(file.ImpactVerbs),
		positive:         toSet(file.Sentiment.Positive),
		negative:         toSet(file.Sentiment.Negative),
	}

	seen := make(map[string]struct{})
	for _, def := range file.Technical {
		for _, term := range def.Terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			cat.technical = append(cat.technical, termMatcher{term: term, re: wordBoundaryRegexp(term)})
		}
	}

	for _, p := range file.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("parse catalogue: pattern %q: %w", p, err)
		}
		cat.patterns = append(cat.patterns, re)
	}

	for _, s := range file.Soft {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			cat.soft = append(cat.soft, s)
		}
	}

	for i, group := range file.Variants {
		for _, v := range group {
			cat.variantGroup[compactTerm(v)] = i
		}
	}
	return cat, nil
}

// wordBoundaryRegexp matches term as a whole word. Terms ending in symbols
// such as "c++" only need a boundary on the side that is a word character.
func wordBoundaryRegexp(term string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)")
	if isWordByte(term[0]) {
		b.WriteString(`\b`)
	}
	b.WriteString(regexp.QuoteMeta(term))
	if isWordByte(term[len(term)-1]) {
		b.WriteString(`\b`)
	}
	return regexp.MustCompile(b.String())
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[strings.ToLower(strings.TrimSpace(item))] = struct{}{}
	}
	return out
}
