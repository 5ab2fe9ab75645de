package ledger

import (
	"context"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/ic/host"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
	"github.com/yndnr/canikit-go/pkg/principal"
)

const service = "ledger"

// Service performs ledger operations on behalf of the running canister.
type Service struct {
	client Client
	rt     host.Runtime
	gate   *host.Gate
	fee    uint64
	memo   Memo
}

// Option configures a Service.
type Option func(*Service)

// WithGate paces and records ledger calls.
func WithGate(g *host.Gate) Option {
	return func(s *Service) { s.gate = g }
}

// WithFee overrides the transfer fee in e8s.
func WithFee(e8s uint64) Option {
	return func(s *Service) { s.fee = e8s }
}

// WithMemo sets the memo used by TransferICP.
func WithMemo(m Memo) Option {
	return func(s *Service) { s.memo = m }
}

// NewService binds a ledger client to the runtime.
func NewService(client Client, rt host.Runtime, opts ...Option) *Service {
	s := &Service{
		client: client,
		rt:     rt,
		gate:   host.Unlimited(),
		fee:    TransactionFee,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TransferICP sends amountE8s from the canister's default account to the
// default account of to.
func (s *Service) TransferICP(ctx context.Context, to principal.Principal, amountE8s uint64) (BlockIndex, error) {
	return s.Transfer(ctx, "transfer_icp", principal.DefaultAccount(to), amountE8s, s.memo)
}

// Transfer sends amountE8s to an arbitrary account identifier. A ledger
// rejection is returned as ExternalServiceError wrapping *TransferError.
func (s *Service) Transfer(ctx context.Context, method string, to principal.AccountIdentifier, amountE8s uint64, memo Memo) (BlockIndex, error) {
	now := s.rt.Time()
	args := TransferArgs{
		Memo:          memo,
		Amount:        FromE8s(amountE8s),
		Fee:           FromE8s(s.fee),
		To:            to,
		CreatedAtTime: &now,
	}

	var index BlockIndex
	err := s.gate.Call(ctx, service, method, func(ctx context.Context) error {
		var err error
		index, err = s.client.Transfer(ctx, args)
		return err
	})
	if err != nil {
		return 0, external(method, err)
	}

	logger.L(ctx).Debug("ledger transfer", "to", to.String(), "amount_e8s", amountE8s, logger.Block(index))
	return index, nil
}

// GetICPBalance returns the balance of the default account of p.
func (s *Service) GetICPBalance(ctx context.Context, p principal.Principal) (Tokens, error) {
	var balance Tokens
	err := s.gate.Call(ctx, service, "get_icp_balance", func(ctx context.Context) error {
		var err error
		balance, err = s.client.AccountBalance(ctx, principal.DefaultAccount(p))
		return err
	})
	if err != nil {
		return Tokens{}, external("get_icp_balance", err)
	}
	return balance, nil
}

// ValidateTransaction checks that block index records a transfer from the
// default account of from to the default account of to, and returns the
// amount. Any lookup failure or mismatch reports false.
func (s *Service) ValidateTransaction(ctx context.Context, from, to principal.Principal, index BlockIndex) (Tokens, bool) {
	block, ok := s.block(ctx, index)
	if !ok {
		return Tokens{}, false
	}

	op := block.Transaction.Operation
	if op == nil || op.Kind != OpTransfer {
		return Tokens{}, false
	}
	if op.From != principal.DefaultAccount(from) || op.To != principal.DefaultAccount(to) {
		return Tokens{}, false
	}
	return op.Amount, true
}

// block loads one block from the ledger, falling back to the archive
// that holds it.
func (s *Service) block(ctx context.Context, index BlockIndex) (Block, bool) {
	args := GetBlocksArgs{Start: index, Length: 1}
	log := logger.L(ctx)

	var resp QueryBlocksResponse
	err := s.gate.Call(ctx, service, "query_blocks", func(ctx context.Context) error {
		var err error
		resp, err = s.client.QueryBlocks(ctx, args)
		return err
	})
	if err != nil {
		log.Debug("query blocks failed", logger.Block(index), "error", err)
		return Block{}, false
	}
	if len(resp.Blocks) > 0 {
		return resp.Blocks[0], true
	}

	for _, r := range resp.ArchivedBlocks {
		if !r.Contains(index) {
			continue
		}
		var blocks []Block
		err := s.gate.Call(ctx, service, "query_archived_blocks", func(ctx context.Context) error {
			var err error
			blocks, err = s.client.QueryArchivedBlocks(ctx, r, args)
			return err
		})
		if err != nil {
			log.Debug("query archived blocks failed", logger.Block(index), "archive", r.Archive.String(), "error", err)
			return Block{}, false
		}
		if len(blocks) == 0 {
			return Block{}, false
		}
		return blocks[0], true
	}
	return Block{}, false
}

func external(method string, err error) error {
	if ae, ok := domain.AsAPIError(err); ok && ae.Type == domain.TypeServiceUnavailable {
		return err
	}
	return domain.External(method, err)
}
