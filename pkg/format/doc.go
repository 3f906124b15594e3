// Package format renders the location registry for its two output surfaces:
// a monospace block for chat, and a single-line, glyph-width-aligned text
// component for the in-game announcement feed.
package format
