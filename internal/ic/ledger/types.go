// Package ledger wraps the ICP ledger canister: transfers, balances and
// block lookups used to verify incoming payments.
package ledger

import (
	"context"
	"fmt"

	"github.com/yndnr/canikit-go/pkg/principal"
)

const (
	// TransactionFee is the ledger fee in e8s.
	TransactionFee = 10_000
	// E8s is the number of e8s in one ICP.
	E8s = 100_000_000
)

// Mainnet canister ids.
var (
	MainnetLedgerID        = principal.MustFromText("ryjl3-tyaaa-aaaaa-aaaba-cai")
	MainnetCyclesMintingID = principal.MustFromText("rkp4c-7iaaa-aaaaa-aaaca-cai")
)

// Tokens is an ICP amount in e8s.
type Tokens struct {
	E8s uint64 `json:"e8s"`
}

// FromE8s returns e8s as Tokens.
func FromE8s(e8s uint64) Tokens { return Tokens{E8s: e8s} }

func (t Tokens) String() string {
	return fmt.Sprintf("%d.%08d ICP", t.E8s/E8s, t.E8s%E8s)
}

// Memo is the numeric transfer memo.
type Memo uint64

// BlockIndex is the position of a block in the ledger chain.
type BlockIndex = uint64

// TransferArgs is the argument of a ledger transfer.
type TransferArgs struct {
	Memo           Memo                        `json:"memo"`
	Amount         Tokens                      `json:"amount"`
	Fee            Tokens                      `json:"fee"`
	FromSubaccount *principal.Subaccount       `json:"from_subaccount,omitempty"`
	To             principal.AccountIdentifier `json:"to"`
	CreatedAtTime  *uint64                     `json:"created_at_time,omitempty"`
}

// TransferErrorKind enumerates ledger rejections.
type TransferErrorKind uint8

const (
	BadFee TransferErrorKind = iota
	InsufficientFunds
	TxTooOld
	TxCreatedInFuture
	TxDuplicate
)

var transferErrorNames = [...]string{"BadFee", "InsufficientFunds", "TxTooOld", "TxCreatedInFuture", "TxDuplicate"}

func (k TransferErrorKind) String() string {
	if int(k) < len(transferErrorNames) {
		return transferErrorNames[k]
	}
	return fmt.Sprintf("TransferErrorKind(%d)", k)
}

// TransferError is a structured rejection returned by the ledger. Only the
// field matching Kind is meaningful.
type TransferError struct {
	Kind               TransferErrorKind `json:"kind"`
	ExpectedFee        Tokens            `json:"expected_fee,omitempty"`
	Balance            Tokens            `json:"balance,omitempty"`
	AllowedWindowNanos uint64            `json:"allowed_window_nanos,omitempty"`
	DuplicateOf        BlockIndex        `json:"duplicate_of,omitempty"`
}

func (e *TransferError) Error() string {
	switch e.Kind {
	case BadFee:
		return fmt.Sprintf("bad fee, expected %s", e.ExpectedFee)
	case InsufficientFunds:
		return fmt.Sprintf("insufficient funds, balance %s", e.Balance)
	case TxTooOld:
		return fmt.Sprintf("transaction too old, allowed window %dns", e.AllowedWindowNanos)
	case TxCreatedInFuture:
		return "transaction created in the future"
	case TxDuplicate:
		return fmt.Sprintf("duplicate of block %d", e.DuplicateOf)
	}
	return e.Kind.String()
}

// OperationKind enumerates block operations.
type OperationKind uint8

const (
	OpMint OperationKind = iota
	OpBurn
	OpTransfer
	OpApprove
)

// Operation is the effect recorded in a block.
type Operation struct {
	Kind   OperationKind               `json:"kind"`
	From   principal.AccountIdentifier `json:"from"`
	To     principal.AccountIdentifier `json:"to"`
	Amount Tokens                      `json:"amount"`
	Fee    Tokens                      `json:"fee"`
}

// Transaction is the payload of a block.
type Transaction struct {
	Memo          Memo       `json:"memo"`
	Operation     *Operation `json:"operation,omitempty"`
	CreatedAtTime uint64     `json:"created_at_time"`
}

// Block is one ledger block.
type Block struct {
	ParentHash  []byte      `json:"parent_hash,omitempty"`
	Transaction Transaction `json:"transaction"`
	Timestamp   uint64      `json:"timestamp"`
}

// GetBlocksArgs selects Length blocks starting at Start.
type GetBlocksArgs struct {
	Start  BlockIndex `json:"start"`
	Length uint64     `json:"length"`
}

// ArchivedRange points at blocks that moved to an archive canister.
type ArchivedRange struct {
	Start   BlockIndex          `json:"start"`
	Length  uint64              `json:"length"`
	Archive principal.Principal `json:"archive"`
}

// Contains reports whether index falls inside the range.
func (r ArchivedRange) Contains(index BlockIndex) bool {
	return r.Start <= index && index-r.Start < r.Length
}

// QueryBlocksResponse is the ledger's answer to a block query.
type QueryBlocksResponse struct {
	ChainLength     uint64          `json:"chain_length"`
	FirstBlockIndex BlockIndex      `json:"first_block_index"`
	Blocks          []Block         `json:"blocks"`
	ArchivedBlocks  []ArchivedRange `json:"archived_blocks"`
}

// Client is the ledger canister interface.
type Client interface {
	// Transfer returns a *TransferError when the ledger rejects the transfer.
	Transfer(ctx context.Context, args TransferArgs) (BlockIndex, error)
	AccountBalance(ctx context.Context, account principal.AccountIdentifier) (Tokens, error)
	QueryBlocks(ctx context.Context, args GetBlocksArgs) (QueryBlocksResponse, error)
	QueryArchivedBlocks(ctx context.Context, archive ArchivedRange, args GetBlocksArgs) ([]Block, error)
}
