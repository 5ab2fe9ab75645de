package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/internal/app"
	"github.com/yndnr/canikit-go/internal/cli/output"
	"github.com/yndnr/canikit-go/internal/config"
	"github.com/yndnr/canikit-go/internal/infra/buildinfo"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
)

const envKey = "canikit.env"

// env is built once per invocation by the root Before hook.
type env struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
	format     output.Format
}

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 "canikit",
		Usage:                "Inspect stable memory and prepare canister deployments",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			StableCommand(),
			BlobCommand(),
			WasmCommand(),
			AmountCommand(),
			PrincipalCommand(),
			MetricsCommand(),
			ShellCommand(),
			VersionCommand(),
		},
		Before: setup,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (YAML)",
			EnvVars: []string{"CANIKIT_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"d"},
			Usage:   "Stable memory directory (overrides stable.dir)",
		},
		&cli.BoolFlag{
			Name:   "in-memory",
			Usage:  "Use a throwaway in-memory engine",
			Hidden: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (overrides log.level)",
		},
	}
}

func setup(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if c.IsSet("dir") {
		overrides["stable.dir"] = c.String("dir")
	}
	if c.Bool("in-memory") {
		overrides["stable.in_memory"] = true
	}
	if c.IsSet("log-level") {
		overrides["log.level"] = c.String("log-level")
	}

	cfg, err := config.Load(c.String("config"), overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]any{}
	}
	c.App.Metadata[envKey] = &env{
		configPath: c.String("config"),
		cfg:        cfg,
		log:        log,
		format:     format,
	}
	return nil
}

func getEnv(c *cli.Context) *env {
	e, _ := c.App.Metadata[envKey].(*env)
	return e
}

// openContext opens the stable engine named by the configuration. The
// caller closes it.
func openContext(c *cli.Context) (*app.Context, error) {
	e := getEnv(c)
	return app.New(e.cfg, e.log)
}

// render writes data to stdout in the selected format.
func render(c *cli.Context, data any) error {
	return output.NewFormatter(getEnv(c).format, false).Format(c.App.Writer, data)
}
