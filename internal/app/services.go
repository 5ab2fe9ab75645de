package app

import (
	"github.com/yndnr/canikit-go/internal/ic/canister"
	"github.com/yndnr/canikit-go/internal/ic/cycles"
	"github.com/yndnr/canikit-go/internal/ic/host"
	"github.com/yndnr/canikit-go/internal/ic/ledger"
)

// Ledger binds client to the configured fee, memo and call gate.
func (c *Context) Ledger(client ledger.Client, rt host.Runtime) *ledger.Service {
	return ledger.NewService(client, rt,
		ledger.WithGate(c.gate),
		ledger.WithFee(c.cfg.Ledger.TransferFeeE8s),
		ledger.WithMemo(ledger.Memo(c.cfg.Ledger.Memo)),
	)
}

// Cycles binds a minting client to the call gate. l funds top-ups.
func (c *Context) Cycles(minting cycles.MintingClient, l *ledger.Service) *cycles.Service {
	return cycles.NewService(minting, l, cycles.WithGate(c.gate))
}

// Canisters binds a management client to the call gate.
func (c *Context) Canisters(client canister.ManagementClient) *canister.Service {
	return canister.NewService(client, c.gate)
}
