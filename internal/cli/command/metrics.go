package command

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/internal/config"
	"github.com/yndnr/canikit-go/internal/infra/confloader"
	"github.com/yndnr/canikit-go/internal/infra/shutdown"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
)

const shutdownTimeout = 10 * time.Second

// MetricsCommand returns the metrics command, which serves the Prometheus
// endpoint until interrupted.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Serve stable memory and call metrics on /metrics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (overrides metrics.addr)"},
		},
		Action: serveMetrics,
	}
}

func serveMetrics(c *cli.Context) error {
	e := getEnv(c)
	addr := e.cfg.Metrics.Addr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	ac, err := openContext(c)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		ac.Close()
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", ac.Metrics().Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	h := shutdown.NewHandler(shutdownTimeout)
	h.OnShutdown(func(context.Context) error {
		e.log.Info("closing stable memory")
		return ac.Close()
	})
	h.OnShutdown(func(ctx context.Context) error {
		e.log.Info("stopping metrics server")
		return srv.Shutdown(ctx)
	})

	if e.configPath != "" {
		w, err := watchLogLevel(e)
		if err != nil {
			e.log.Warn("config reload disabled", "error", err)
		} else {
			h.OnShutdown(func(context.Context) error { return w.Stop() })
		}
	}

	go func() {
		e.log.Info("metrics server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.log.Error("metrics server error", "error", err)
		}
	}()

	return h.WaitContext(c.Context)
}

// watchLogLevel reloads the configuration file on change and applies the
// new log level. Other sections need a restart.
func watchLogLevel(e *env) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(e.log.Slog()))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(e.configPath); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnChange(func(path string) {
		cfg, err := config.Load(path, nil)
		if err != nil {
			e.log.Warn("ignoring invalid config change", "path", path, "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		e.log.Info("log level reloaded", "level", cfg.Log.Level)
	})
	w.StartAsync()
	return w, nil
}
