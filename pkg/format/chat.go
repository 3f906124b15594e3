package format

import (
	"strings"
	"unicode/utf8"

	"github.com/aretw0/locbot/pkg/core"
)

// CategoryString renders one category as a bold header followed by a code
// block. Names are padded to the character count of the longest one, so
// descriptions line up for names of single-cell characters.
func CategoryString(c core.Category) string {
	width := 0
	for _, e := range c.Entries {
		width = max(width, utf8.RuneCountInString(e.Name))
	}

	var b strings.Builder
	b.WriteString("**")
	b.WriteString(c.Name)
	b.WriteString(":**\n```\n")
	for _, e := range c.Entries {
		b.WriteString(e.Name)
		b.WriteString(strings.Repeat(" ", width-utf8.RuneCountInString(e.Name)+1))
		b.WriteString(e.Text)
		b.WriteByte('\n')
	}
	b.WriteString("```\n")
	return b.String()
}

// AllString concatenates CategoryString for every category in order.
func AllString(cats []core.Category) string {
	var b strings.Builder
	for _, c := range cats {
		b.WriteString(CategoryString(c))
	}
	return b.String()
}
