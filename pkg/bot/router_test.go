package bot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/locbot/pkg/adapters/console"
	"github.com/aretw0/locbot/pkg/adapters/fs"
	"github.com/aretw0/locbot/pkg/bot"
	"github.com/aretw0/locbot/pkg/chat"
	"github.com/aretw0/locbot/pkg/core"
)

const (
	general  = "general"
	consoleC = "console"
	relay    = "relay"
	alice    = "alice"
)

type fixture struct {
	path     string
	registry *core.Registry
	session  *console.Session
	router   *bot.Router
}

func newFixture(t *testing.T, doc string) *fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	repo := fs.NewRepository(fs.Config{Path: path})
	require.NoError(t, repo.Initialize(context.Background()))
	registry := core.NewRegistry(repo, nil)
	require.NoError(t, registry.Load(context.Background()))

	session := console.New()
	router := bot.NewRouter(registry, session, bot.Config{
		ConsoleChannelID: consoleC,
		RelayAuthorID:    relay,
	})
	return &fixture{path: path, registry: registry, session: session, router: router}
}

// say posts content as author in the general channel and handles it.
func (f *fixture) say(t *testing.T, author, content string) (chat.Message, error) {
	t.Helper()
	msg := f.session.Post(general, author, content)
	return msg, f.router.Handle(context.Background(), msg)
}

func (f *fixture) replies() []string {
	return f.session.Contents()
}

const townsDoc = `{"locations":{"Towns":{"Spawn":"0 0","Market":"100 200"},"Farms":{}}}`

func TestRouter_Help(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, "!loc")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc   ")
	require.NoError(t, err)

	assert.Equal(t, []string{bot.HelpText, bot.HelpText}, f.replies())
}

func TestRouter_UnknownCommand(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, "!loc teleport home")
	require.NoError(t, err)

	assert.Equal(t, []string{"Sorry, I don't understand :(", bot.HelpText}, f.replies())
}

func TestRouter_UnbalancedQuotesGetHelp(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, `!loc get "Spawn`)
	require.NoError(t, err)

	assert.Equal(t, []string{bot.HelpText}, f.replies())
}

func TestRouter_Filtering(t *testing.T) {
	f := newFixture(t, townsDoc)
	ctx := context.Background()

	other := chat.Message{ID: "1", ChannelID: general, AuthorID: "otherbot", AuthorBot: true, Content: "!loc list"}
	fromConsole := chat.Message{ID: "2", ChannelID: consoleC, AuthorID: alice, Content: "!loc list"}
	plain := chat.Message{ID: "3", ChannelID: general, AuthorID: alice, Content: "where is spawn?"}

	for _, msg := range []chat.Message{other, fromConsole, plain} {
		require.NoError(t, f.router.Handle(ctx, msg))
	}
	assert.Empty(t, f.replies())

	assert.True(t, f.router.Accepts(chat.Message{ChannelID: general, AuthorID: relay, AuthorBot: true}))
}

func TestRouter_CommandNameIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, "hey !loc GET spawn")
	require.NoError(t, err)

	assert.Equal(t, []string{"Spawn: 0 0"}, f.replies())
}

func TestRouter_List(t *testing.T) {
	t.Run("All Categories", func(t *testing.T) {
		f := newFixture(t, townsDoc)

		_, err := f.say(t, alice, "!loc list")
		require.NoError(t, err)

		assert.Equal(t, []string{"**Towns:**\n```\nSpawn  0 0\nMarket 100 200\n```\n**Farms:**\n```\n```\n"}, f.replies())
	})

	t.Run("One Category", func(t *testing.T) {
		f := newFixture(t, townsDoc)

		_, err := f.say(t, alice, "!loc list towns")
		require.NoError(t, err)

		assert.Equal(t, []string{"**Towns:**\n```\nSpawn  0 0\nMarket 100 200\n```\n"}, f.replies())
	})

	t.Run("Invalid Category", func(t *testing.T) {
		f := newFixture(t, townsDoc)

		_, err := f.say(t, alice, "!loc list Bases")
		require.NoError(t, err)

		assert.Equal(t, []string{`Invalid category "Bases"`}, f.replies())
	})

	t.Run("Relay Gets In-Game Broadcast", func(t *testing.T) {
		f := newFixture(t, `{"locations":{"Farms":{"Iron":"-300 20"}}}`)
		msg := f.session.Post(general, relay, "!loc list")
		msg.AuthorBot = true

		require.NoError(t, f.router.Handle(context.Background(), msg))

		sent := f.session.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, consoleC, sent[0].ChannelID)
		assert.Equal(t, `tellraw @a {"text": "Farms:\nIron...-300 20\n"}`, sent[0].Content)
	})
}

func TestRouter_Get(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, "!loc get MARKET")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc get market")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc get Castle")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc get")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Market: 100 200",
		"Market: 100 200",
		`"Castle" Not Found`,
		"Usage: !loc get <name>",
	}, f.replies())
}

func TestRouter_SetThenGet(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, `!loc set Farms "Iron Farm" 100 64   -20`)
	require.NoError(t, err)
	_, err = f.say(t, alice, `!loc get "iron farm"`)
	require.NoError(t, err)

	assert.Equal(t, []string{`"Iron Farm" Saved!`, "Iron Farm: 100 64 -20"}, f.replies())

	data, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"locations":{"Towns":{"Spawn":"0 0","Market":"100 200"},"Farms":{"Iron Farm":"100 64 -20"}}}`, string(data))
}

func TestRouter_SetRejections(t *testing.T) {
	f := newFixture(t, townsDoc)
	before, err := os.ReadFile(f.path)
	require.NoError(t, err)

	_, err = f.say(t, alice, "!loc set Bases Home 1 2")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc set Towns Home")
	require.NoError(t, err)

	assert.Equal(t, []string{`Invalid category "Bases"`, "Usage: !loc set <category> <name> <location>"}, f.replies())

	after, _ := os.ReadFile(f.path)
	assert.Equal(t, string(before), string(after), "rejected sets do not write")
}

func TestRouter_Remove(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, "!loc remove Towns Castle")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc remove Bases Spawn")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc remove Towns")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc remove Towns Spawn")
	require.NoError(t, err)

	assert.Equal(t, []string{
		`Invalid location "Castle"`,
		`Invalid category "Bases"`,
		"Usage: !loc remove <category> <name>",
		`"Spawn" removed!`,
	}, f.replies())

	cat, ok := f.registry.Category("Towns")
	require.True(t, ok)
	assert.Equal(t, []core.Entry{{Name: "Market", Text: "100 200"}}, cat.Entries)
}

func TestRouter_PortalHelp(t *testing.T) {
	f := newFixture(t, townsDoc)

	_, err := f.say(t, alice, "!loc portalhelp -420 100")
	require.NoError(t, err)
	_, err = f.say(t, alice, "!loc portalhelp 1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Your portal in the nether should be placed at x-53 y80 z12 off of West SouthWest -50 Road",
		"Usage: !loc portalhelp <x> <z>",
	}, f.replies())
}
