package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locbot/pkg/core"
	"github.com/aretw0/locbot/pkg/format"
)

func towns() core.Category {
	return core.Category{Name: "Towns", Entries: []core.Entry{
		{Name: "Spawn", Text: "0 0"},
		{Name: "Market", Text: "100 200"},
	}}
}

func TestCategoryString(t *testing.T) {
	got := format.CategoryString(towns())

	assert.Equal(t, "**Towns:**\n```\nSpawn  0 0\nMarket 100 200\n```\n", got)
}

func TestCategoryString_DescriptionsShareAColumn(t *testing.T) {
	c := core.Category{Name: "Bases", Entries: []core.Entry{
		{Name: "a", Text: "one"},
		{Name: "Longest Name", Text: "two"},
		{Name: "mid", Text: "three four"},
	}}

	lines := strings.Split(format.CategoryString(c), "\n")
	require.Len(t, lines, 7)
	for _, line := range lines[2:5] {
		assert.Equal(t, ' ', rune(line[len("Longest Name")]), "line %q", line)
		assert.NotEqual(t, ' ', rune(line[len("Longest Name")+1]), "line %q", line)
	}
}

func TestCategoryString_PadsByCharacterCount(t *testing.T) {
	c := core.Category{Name: "Mixed", Entries: []core.Entry{
		{Name: "Farm°", Text: "1"},
		{Name: "Market", Text: "2"},
		{Name: "日本", Text: "3"},
	}}

	assert.Equal(t, "**Mixed:**\n```\nFarm°  1\nMarket 2\n日本     3\n```\n", format.CategoryString(c))
}

func TestCategoryString_EmptyCategory(t *testing.T) {
	assert.Equal(t, "**Empty:**\n```\n```\n", format.CategoryString(core.Category{Name: "Empty"}))
}

func TestAllString(t *testing.T) {
	farms := core.Category{Name: "Farms", Entries: []core.Entry{{Name: "Iron", Text: "-300 20"}}}

	got := format.AllString([]core.Category{towns(), farms})

	assert.Equal(t, format.CategoryString(towns())+format.CategoryString(farms), got)
	assert.Empty(t, format.AllString(nil))
}

func TestGlyphWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Spawn", 30},
		{"il", 5},
		{"Iron Farm", 50},
		{"é", 6},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, format.GlyphWidth(tt.in))
		})
	}
}

func TestCategoryStringInGame(t *testing.T) {
	c := core.Category{Name: "Towns", Entries: []core.Entry{
		{Name: "Spawn", Text: "0 0"},
		{Name: "Iron Farm", Text: "100 200"},
		{Name: "il", Text: "5 5"},
	}}

	got := format.CategoryStringInGame(c)

	want := `Towns:\n` +
		`Spawn` + strings.Repeat(".", 10) + `...0 0\n` +
		`Iron Farm...100 200\n` +
		`il` + strings.Repeat(".", 22) + `...5 5\n`
	assert.Equal(t, want, got)
}

func TestCategoryStringInGame_EscapesComponentText(t *testing.T) {
	c := core.Category{Name: "Q", Entries: []core.Entry{{Name: "a", Text: `the "big" one \o/`}}}

	got := format.CategoryStringInGame(c)

	assert.Equal(t, `Q:\na...the \"big\" one \\o/\n`, got)
}

func TestAllStringInGameAndTellraw(t *testing.T) {
	farms := core.Category{Name: "Farms", Entries: []core.Entry{{Name: "Iron", Text: "-300 20"}}}

	all := format.AllStringInGame([]core.Category{towns(), farms})
	assert.Equal(t, format.CategoryStringInGame(towns())+format.CategoryStringInGame(farms), all)

	assert.Equal(t, `tellraw @a {"text": "Farms:\nIron...-300 20\n"}`, format.Tellraw(format.CategoryStringInGame(farms)))
}
