package locbot_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/locbot"
	"github.com/aretw0/locbot/pkg/adapters/console"
)

func Example() {
	dir, err := os.MkdirTemp("", "locbot-example")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	cfg := locbot.DefaultConfig()
	cfg.DataPath = filepath.Join(dir, "data.json")
	if err := os.WriteFile(cfg.DataPath, []byte(`{"locations":{"Towns":{}}}`), 0644); err != nil {
		panic(err)
	}

	ctx := context.Background()
	session := console.New()
	b, err := locbot.New(ctx, cfg, session)
	if err != nil {
		panic(err)
	}

	for _, line := range []string{
		"!loc set Towns Spawn 0 64 0",
		"!loc get spawn",
		"!loc portalhelp 800 -90",
	} {
		if err := b.Router.Handle(ctx, session.Post("general", "alice", line)); err != nil {
			panic(err)
		}
	}

	for _, content := range session.Contents() {
		fmt.Println(content)
	}
	// Output:
	// "Spawn" Saved!
	// Spawn: 0 64 0
	// Your portal in the nether should be placed at x100 y80 z-12 off of East NorthEast 100 Road
}
