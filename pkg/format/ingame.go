package format

import (
	"strings"

	"github.com/aretw0/locbot/pkg/core"
)

// DefaultCharWidth is the pixel width of glyphs missing from CharWidths.
const DefaultCharWidth = 5

// CharWidths holds pixel widths of the game's default font that differ from
// DefaultCharWidth. Every glyph is followed by one pixel of spacing.
var CharWidths = map[rune]int{
	' ':  3,
	'!':  1,
	'"':  3,
	'\'': 1,
	'(':  3,
	')':  3,
	'*':  3,
	',':  1,
	'.':  1,
	':':  1,
	';':  1,
	'<':  4,
	'>':  4,
	'@':  6,
	'I':  3,
	'[':  3,
	']':  3,
	'`':  2,
	'f':  4,
	'i':  1,
	'k':  4,
	'l':  2,
	't':  3,
	'{':  3,
	'|':  1,
	'}':  3,
	'~':  6,
}

// newline is the escaped line break understood inside a JSON text component.
const newline = `\n`

var componentEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// GlyphWidth returns the rendered pixel width of s, spacing included.
func GlyphWidth(s string) int {
	width := 0
	for _, r := range s {
		w, ok := CharWidths[r]
		if !ok {
			w = DefaultCharWidth
		}
		width += w + 1
	}
	return width
}

// CategoryStringInGame renders one category for the in-game feed. Each name
// is followed by half of its pixel shortfall in dots, then "...", then the text.
func CategoryStringInGame(c core.Category) string {
	widths := make([]int, len(c.Entries))
	longest := 0
	for i, e := range c.Entries {
		widths[i] = GlyphWidth(e.Name)
		longest = max(longest, widths[i])
	}

	var b strings.Builder
	b.WriteString(componentEscaper.Replace(c.Name))
	b.WriteString(":" + newline)
	for i, e := range c.Entries {
		b.WriteString(componentEscaper.Replace(e.Name))
		b.WriteString(strings.Repeat(".", (longest-widths[i])/2))
		b.WriteString("...")
		b.WriteString(componentEscaper.Replace(e.Text))
		b.WriteString(newline)
	}
	return b.String()
}

// AllStringInGame concatenates CategoryStringInGame for every category in order.
func AllStringInGame(cats []core.Category) string {
	var b strings.Builder
	for _, c := range cats {
		b.WriteString(CategoryStringInGame(c))
	}
	return b.String()
}

// Tellraw wraps an in-game rendering in a broadcast command for every player.
func Tellraw(text string) string {
	return `tellraw @a {"text": "` + text + `"}`
}
