package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/internal/ic/ledger"
	"github.com/yndnr/canikit-go/pkg/amount"
	"github.com/yndnr/canikit-go/pkg/strutil"
)

// AmountCommand returns the amount subcommand group.
func AmountCommand() *cli.Command {
	return &cli.Command{
		Name:  "amount",
		Usage: "Convert between ICP and e8s",
		Subcommands: []*cli.Command{
			{
				Name:      "e8s",
				Usage:     "Convert a decimal ICP amount to e8s",
				ArgsUsage: "ICP",
				Action:    amountToE8s,
			},
			{
				Name:      "icp",
				Usage:     "Convert e8s to a decimal ICP amount",
				ArgsUsage: "E8S",
				Action:    amountToICP,
			},
		},
	}
}

type amountView struct {
	ICP     string `json:"icp"`
	E8s     uint64 `json:"e8s"`
	Grouped string `json:"grouped" table:"wide"`
}

func newAmountView(e8s uint64) amountView {
	return amountView{
		ICP:     ledger.FromE8s(e8s).String(),
		E8s:     e8s,
		Grouped: strutil.FormatWithUnderscores(e8s),
	}
}

func singleArg(c *cli.Context, name string) (string, error) {
	if c.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one %s argument", name)
	}
	return strings.ReplaceAll(c.Args().First(), "_", ""), nil
}

func amountToE8s(c *cli.Context) error {
	arg, err := singleArg(c, "ICP")
	if err != nil {
		return err
	}
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("parse %q: %w", arg, err)
	}
	if f < 0 {
		return errors.New("amount must not be negative")
	}
	e8s := amount.F64ToE8s(f)
	if !e8s.IsUint64() {
		return errors.New("amount overflows u64 e8s")
	}
	return render(c, newAmountView(e8s.Uint64()))
}

func amountToICP(c *cli.Context) error {
	arg, err := singleArg(c, "E8S")
	if err != nil {
		return err
	}
	e8s, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %q: %w", arg, err)
	}
	return render(c, newAmountView(e8s))
}
