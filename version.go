package locbot

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of the bot, read from the VERSION file at build time.
var Version = strings.TrimSpace(version)
