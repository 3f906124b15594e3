// Package bot turns chat messages into location registry commands.
//
// A Router recognizes the "!loc <command> <args>" grammar, dispatches to one
// handler per Command and replies through a chat.Session. A Pinner keeps the
// single pinned summary message in step with the registry.
package bot
