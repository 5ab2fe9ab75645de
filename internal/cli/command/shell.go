package command

import (
	"errors"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/internal/cli/repl"
)

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Run commands interactively (end a prefix with ? to complete)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-history", Usage: "Do not read or write ~/.canikit/history"},
		},
		Action: runShell,
	}
}

func runShell(c *cli.Context) error {
	history := repl.NewHistory("")
	if !c.Bool("no-history") {
		history = repl.NewHistory(repl.DefaultHistoryFile())
		if err := history.Load(); err != nil {
			getEnv(c).log.Warn("history not loaded", "error", err)
		}
	}

	r := repl.New(
		shellExecutor(c),
		repl.NewCompleter(commandPaths("", App().Commands)...),
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(history),
	)
	if err := r.Run(); err != nil {
		return err
	}
	return history.Save()
}

// shellExecutor runs each line as a fresh invocation carrying the global
// flags of the shell itself.
func shellExecutor(c *cli.Context) repl.Executor {
	var global []string
	for _, name := range []string{"config", "dir", "output", "log-level"} {
		if c.IsSet(name) {
			global = append(global, "--"+name, c.String(name))
		}
	}
	if c.Bool("in-memory") {
		global = append(global, "--in-memory")
	}

	return func(args []string) error {
		if len(args) > 0 && args[0] == "shell" {
			return errors.New("already in a shell")
		}
		sub := App()
		sub.Reader = c.App.Reader
		sub.Writer = c.App.Writer
		sub.ErrWriter = c.App.ErrWriter
		sub.ExitErrHandler = func(*cli.Context, error) {}

		argv := append([]string{c.App.Name}, global...)
		return sub.RunContext(c.Context, append(argv, args...))
	}
}

func commandPaths(prefix string, cmds []*cli.Command) []string {
	var out []string
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		path := strings.TrimSpace(prefix + " " + cmd.Name)
		out = append(out, path)
		out = append(out, commandPaths(path, cmd.Subcommands)...)
	}
	return out
}
