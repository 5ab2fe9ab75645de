package command

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/internal/cli/output"
	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/stable"
	"github.com/yndnr/canikit-go/pkg/blob"
	"github.com/yndnr/canikit-go/pkg/timeutil"
)

// StableCommand returns the stable memory subcommand group.
func StableCommand() *cli.Command {
	passphrase := &cli.StringFlag{
		Name:    "passphrase",
		Usage:   "Seal or open the backup with this passphrase",
		EnvVars: []string{"CANIKIT_BACKUP_PASSPHRASE"},
	}
	return &cli.Command{
		Name:  "stable",
		Usage: "Inspect and maintain stable memory",
		Subcommands: []*cli.Command{
			{
				Name:   "regions",
				Usage:  "List non-empty regions with key counts and sizes",
				Action: stableRegions,
			},
			{
				Name:  "dump",
				Usage: "Print the raw entries of one region",
				Flags: []cli.Flag{
					&cli.UintFlag{Name: "region", Aliases: []string{"r"}, Usage: "Region id (0-255)", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "Maximum entries to print (0 for all)", Value: 100},
				},
				Action: stableDump,
			},
			{
				Name:   "gc",
				Usage:  "Reclaim value log space",
				Action: stableGC,
			},
			{
				Name:  "backup",
				Usage: "Write a full backup",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "Backup file", Required: true},
					passphrase,
				},
				Action: stableBackup,
			},
			{
				Name:  "restore",
				Usage: "Replace stable memory with a backup",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "in", Usage: "Backup file", Required: true},
					passphrase,
				},
				Action: stableRestore,
			},
			{
				Name:  "audit",
				Usage: "Show the audit log, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "limit", Value: 20},
					&cli.UintFlag{Name: "since-hours", Usage: "Only entries created in the last N hours"},
				},
				Action: stableAudit,
			},
		},
	}
}

type regionView struct {
	ID    stable.MemoryID `json:"id"`
	Name  string          `json:"name"`
	Keys  uint64          `json:"keys"`
	Bytes uint64          `json:"bytes"`
}

func stableRegions(c *cli.Context) error {
	ac, err := openContext(c)
	if err != nil {
		return err
	}
	defer ac.Close()

	stats, err := ac.Engine().Regions()
	if err != nil {
		return err
	}
	names := make(map[stable.MemoryID]string)
	for _, r := range ac.Memory().Claimed() {
		names[r.ID()] = r.Name()
	}

	views := make([]regionView, 0, len(stats))
	for _, s := range stats {
		views = append(views, regionView{ID: s.ID, Name: names[s.ID], Keys: s.Keys, Bytes: s.Bytes})
	}
	return render(c, views)
}

type entryView struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Size  int    `json:"size"`
}

func stableDump(c *cli.Context) error {
	id := c.Uint("region")
	if id > 255 {
		return fmt.Errorf("region %d out of range", id)
	}
	limit := c.Int("limit")

	ac, err := openContext(c)
	if err != nil {
		return err
	}
	defer ac.Close()

	entries := []entryView{}
	err = ac.Engine().Dump(stable.MemoryID(id), func(key, value []byte) bool {
		entries = append(entries, entryView{
			Key:   hex.EncodeToString(key),
			Value: printable(value),
			Size:  len(value),
		})
		return limit <= 0 || len(entries) < limit
	})
	if err != nil {
		return err
	}
	return render(c, entries)
}

// printable shows UTF-8 values as text and anything else as base64.
func printable(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return "base64:" + blob.ToBase64(b)
}

func stableGC(c *cli.Context) error {
	ac, err := openContext(c)
	if err != nil {
		return err
	}
	defer ac.Close()

	n, err := ac.Engine().GC()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "rewrote %d value log file(s)\n", n)
	return nil
}

func sealer(c *cli.Context) (*stable.Sealer, error) {
	if !c.IsSet("passphrase") {
		return nil, nil
	}
	return stable.NewSealer([]byte(c.String("passphrase")))
}

func stableBackup(c *cli.Context) error {
	s, err := sealer(c)
	if err != nil {
		return err
	}
	ac, err := openContext(c)
	if err != nil {
		return err
	}
	defer ac.Close()

	path := c.String("out")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	bar := output.NewProgressBar(c.App.ErrWriter, "backup", 0)
	w := bufio.NewWriter(bar.Writer(f))

	if err := ac.Engine().Backup(w, s); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	bar.Finish()
	if err := f.Close(); err != nil {
		return err
	}

	ac.Logger().Info("backup written", "path", path, "sealed", s != nil)
	return nil
}

func stableRestore(c *cli.Context) error {
	s, err := sealer(c)
	if err != nil {
		return err
	}
	f, err := os.Open(c.String("in"))
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	ac, err := openContext(c)
	if err != nil {
		return err
	}
	defer ac.Close()

	bar := output.NewProgressBar(c.App.ErrWriter, "restore", info.Size())
	err = ac.Engine().Restore(bar.Reader(f), s)
	switch {
	case errors.Is(err, stable.ErrSealed):
		return errors.New("backup is sealed, pass --passphrase")
	case errors.Is(err, stable.ErrNotSealed):
		return errors.New("backup is not sealed, drop --passphrase")
	case err != nil:
		return err
	}
	bar.Finish()

	ac.Logger().Info("backup restored", "path", c.String("in"))
	return nil
}

func stableAudit(c *cli.Context) error {
	ac, err := openContext(c)
	if err != nil {
		return err
	}
	defer ac.Close()

	var page domain.PagedResponse[domain.LogResponse]
	if hours := uint64(c.Uint("since-hours")); hours > 0 {
		now := timeutil.Nanos(time.Now())
		start := now - min(now, timeutil.HoursToNanoseconds(hours))
		page, err = ac.AuditLogWithin(domain.NewDateRange(start, 0), c.Int("page"), c.Int("limit"))
	} else {
		page, err = ac.AuditLog(c.Int("page"), c.Int("limit"))
	}
	if err != nil {
		return err
	}
	if getEnv(c).format != output.FormatTable {
		return render(c, page)
	}
	fmt.Fprintf(c.App.Writer, "page %d of %d (%d entries)\n", page.Page, page.NumberOfPages, page.Total)
	return render(c, page.Data)
}
