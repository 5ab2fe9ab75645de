package repl

import (
	"slices"
	"strings"
)

// Completer suggests command lines for a prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over commands. The REPL's own
// commands are always included.
func NewCompleter(commands ...string) *Completer {
	all := append([]string{"exit", "history", "quit"}, commands...)
	slices.Sort(all)
	return &Completer{commands: slices.Compact(all)}
}

// Complete returns the known commands starting with prefix, sorted.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
