package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/canikit-go/pkg/principal"
)

// PrincipalCommand returns the principal subcommand group.
func PrincipalCommand() *cli.Command {
	return &cli.Command{
		Name:  "principal",
		Usage: "Work with principals and ledger accounts",
		Subcommands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Validate a principal and print its canonical form",
				ArgsUsage: "PRINCIPAL",
				Action:    principalCheck,
			},
			{
				Name:      "account",
				Usage:     "Print the default ledger account identifier of a principal",
				ArgsUsage: "PRINCIPAL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subaccount-of", Usage: "Derive the subaccount from this principal"},
				},
				Action: principalAccount,
			},
		},
	}
}

func parsePrincipalArg(c *cli.Context) (principal.Principal, error) {
	if c.NArg() != 1 {
		return principal.Principal{}, errors.New("expected exactly one PRINCIPAL argument")
	}
	return principal.FromText(c.Args().First())
}

type principalView struct {
	Principal string `json:"principal"`
	Length    int    `json:"length"`
	Anonymous bool   `json:"anonymous"`
}

func principalCheck(c *cli.Context) error {
	p, err := parsePrincipalArg(c)
	if err != nil {
		return err
	}
	return render(c, principalView{
		Principal: p.String(),
		Length:    p.Len(),
		Anonymous: p.IsAnonymous(),
	})
}

type accountView struct {
	Principal string `json:"principal"`
	Account   string `json:"account"`
}

func principalAccount(c *cli.Context) error {
	p, err := parsePrincipalArg(c)
	if err != nil {
		return err
	}

	id := principal.DefaultAccount(p)
	if s := c.String("subaccount-of"); s != "" {
		sub, err := principal.FromText(s)
		if err != nil {
			return err
		}
		id = principal.NewAccountIdentifier(p, principal.SubaccountFromPrincipal(sub))
	}
	return render(c, accountView{Principal: p.String(), Account: id.String()})
}
