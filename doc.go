// Package locbot is the composition root of a chat bot that keeps a shared,
// categorized registry of Minecraft locations.
//
// Players talk to it with "!loc" commands: list the registry, look a
// location up, save or remove one, and compute where a nether portal must
// go to line up with the nether road grid. The registry lives in a single
// JSON document and a pinned chat message always mirrors its contents.
//
// Usage:
//
//	cfg, err := locbot.LoadConfig("locbot.yaml")
//	if err != nil {
//		return err
//	}
//	b, err := locbot.New(ctx, cfg, session, locbot.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	return b.Serve(ctx, messages)
package locbot
