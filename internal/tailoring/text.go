package tailoring

import (
	"fmt"
	"io"
	"strings"
)

// RenderText writes a result view as plain text for terminals.
func RenderText(w io.Writer, v *ResultView) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Match Score: %s (%s)\n", v.ScoreLabel, v.ScoreColor)
	fmt.Fprintf(&b, "Tone: %s\n\n", v.Sentiment.Label)

	b.WriteString("Keywords to add:\n")
	writeList(&b, v.KeywordsToAdd, v.NoAddMessage, "  + ")
	b.WriteString("Keywords to remove:\n")
	writeList(&b, v.KeywordsToRemove, v.NoRemoveMessage, "  - ")

	for _, s := range []*SkillSection{v.TechnicalSkills, v.SoftSkills} {
		fmt.Fprintf(&b, "\n%s\n", s.Title)
		if !s.Available {
			fmt.Fprintf(&b, "  %s\n", s.Unavailable)
			continue
		}
		for _, sk := range s.InJob {
			mark := " "
			if sk.Matched {
				mark = "x"
			}
			fmt.Fprintf(&b, "  [%s] %s\n", mark, sk.Name)
		}
	}

	if len(v.FormatSuggestions) > 0 {
		b.WriteString("\nFormat Improvements:\n")
		writeList(&b, v.FormatSuggestions, "", "  * ")
	}

	b.WriteString("\nContent Suggestions:\n")
	for i, s := range v.ContentSuggestions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, items []string, empty, prefix string) {
	if len(items) == 0 {
		if empty != "" {
			fmt.Fprintf(b, "  %s\n", empty)
		}
		return
	}
	for _, item := range items {
		b.WriteString(prefix + item + "\n")
	}
}
