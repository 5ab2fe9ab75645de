package app

import (
	"context"

	"github.com/yndnr/canikit-go/internal/ic/ledger"
	"github.com/yndnr/canikit-go/pkg/principal"
)

type fakeLedger struct {
	fee uint64
}

func (f *fakeLedger) Transfer(_ context.Context, args ledger.TransferArgs) (ledger.BlockIndex, error) {
	f.fee = args.Fee.E8s
	return 1, nil
}

func (f *fakeLedger) AccountBalance(context.Context, principal.AccountIdentifier) (ledger.Tokens, error) {
	return ledger.Tokens{}, nil
}

func (f *fakeLedger) QueryBlocks(context.Context, ledger.GetBlocksArgs) (ledger.QueryBlocksResponse, error) {
	return ledger.QueryBlocksResponse{}, nil
}

func (f *fakeLedger) QueryArchivedBlocks(context.Context, ledger.ArchivedRange, ledger.GetBlocksArgs) ([]ledger.Block, error) {
	return nil, nil
}
