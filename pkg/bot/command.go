package bot

import "strings"

// Command is one of the fixed set of chat commands.
type Command int

const (
	CommandPortalHelp Command = iota + 1
	CommandList
	CommandGet
	CommandSet
	CommandRemove
	CommandNewPin
	CommandSyncPin
)

var commandNames = map[Command]string{
	CommandPortalHelp: "portalhelp",
	CommandList:       "list",
	CommandGet:        "get",
	CommandSet:        "set",
	CommandRemove:     "remove",
	CommandNewPin:     "newpin",
	CommandSyncPin:    "syncpin",
}

// ParseCommand resolves a command name, ignoring case.
func ParseCommand(name string) (Command, bool) {
	name = strings.ToLower(name)
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return 0, false
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return "unknown"
}

// Prefix marks a message as addressed to the bot.
const Prefix = "!loc"

// HelpText lists the user-facing commands.
const HelpText = "**__Available Commands:__**\n" +
	"`portalhelp <x> <z>`\n" +
	"`list [category]`\n" +
	"`get <name>`\n" +
	"`set <category> <name> <location>`\n" +
	"`remove <category> <name>`\n"

const apology = "Sorry, I don't understand :("

// Usage lines, sent verbatim when arguments are missing or malformed.
const (
	usagePortalHelp = "Usage: !loc portalhelp <x> <z>"
	usageGet        = "Usage: !loc get <name>"
	usageSet        = "Usage: !loc set <category> <name> <location>"
	usageRemove     = "Usage: !loc remove <category> <name>"
)
