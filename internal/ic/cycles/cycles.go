// Package cycles converts between ICP and cycles using the cycles minting
// canister and tops up canisters with cycles.
package cycles

import (
	"context"
	"math/big"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/ic/host"
	"github.com/yndnr/canikit-go/internal/ic/ledger"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
	"github.com/yndnr/canikit-go/pkg/amount"
	"github.com/yndnr/canikit-go/pkg/principal"
)

const (
	TrillionCycles        uint64 = 1_000_000_000_000
	CanisterSpinupCycles  uint64 = 500_000_000_000
	CyclesSafetyMargin    uint64 = 1_000_000_000
	MinCyclesForSpinup    uint64 = TrillionCycles * 3
	MinCyclesForSpinupDev uint64 = TrillionCycles - CyclesSafetyMargin
)

// XDR fees in permyriad (10_000 = 1 XDR).
const (
	XDRFeeForCanister    uint64 = 5_000
	XDRFeeForProject     uint64 = 100_000
	XDRFeeForCanisterDev uint64 = 500
)

// Memos understood by the cycles minting canister.
const (
	MemoTopUpCanister  ledger.Memo = 0x50555054 // "TPUP"
	MemoCreateCanister ledger.Memo = 0x41455243 // "CREA"
)

const service = "cmc"

// ConversionRate is the ICP/XDR rate published by the minting canister.
type ConversionRate struct {
	XdrPermyriadPerICP uint64 `json:"xdr_permyriad_per_icp"`
	TimestampSeconds   uint64 `json:"timestamp_seconds"`
}

// MintingClient is the cycles minting canister interface.
type MintingClient interface {
	GetIcpXdrConversionRate(ctx context.Context) (ConversionRate, error)
	// NotifyTopUp converts the ICP sent in block into cycles for canister.
	NotifyTopUp(ctx context.Context, block ledger.BlockIndex, canister principal.Principal) (*big.Int, error)
}

// Service wraps a minting client and the ledger used to fund top-ups.
type Service struct {
	minting MintingClient
	ledger  *ledger.Service
	gate    *host.Gate
	cmcID   principal.Principal
}

// Option configures a Service.
type Option func(*Service)

// WithGate paces and records minting canister calls.
func WithGate(g *host.Gate) Option {
	return func(s *Service) { s.gate = g }
}

// WithMintingCanister overrides the minting canister id used as the
// top-up destination.
func WithMintingCanister(id principal.Principal) Option {
	return func(s *Service) { s.cmcID = id }
}

// NewService creates a cycles service. l may be nil when TopUpCanister is
// not used.
func NewService(minting MintingClient, l *ledger.Service, opts ...Option) *Service {
	s := &Service{
		minting: minting,
		ledger:  l,
		gate:    host.Unlimited(),
		cmcID:   ledger.MainnetCyclesMintingID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) rate(ctx context.Context, method string) (uint64, error) {
	var r ConversionRate
	err := s.gate.Call(ctx, service, "get_icp_xdr_conversion_rate", func(ctx context.Context) error {
		var err error
		r, err = s.minting.GetIcpXdrConversionRate(ctx)
		return err
	})
	if err != nil {
		return 0, domain.ExternalService("Error getting XDR conversion rate").
			WithMethod(method).
			WithSource(domain.Source).
			WithCause(err)
	}
	return r.XdrPermyriadPerICP, nil
}

// CyclesPerICP returns how many cycles one ICP buys.
func (s *Service) CyclesPerICP(ctx context.Context) (*big.Int, error) {
	r, err := s.rate(ctx, "cycles_per_icp")
	if err != nil {
		return nil, err
	}
	return cyclesPerICP(r), nil
}

// XdrPermyriadPerICP returns the raw conversion rate.
func (s *Service) XdrPermyriadPerICP(ctx context.Context) (uint64, error) {
	return s.rate(ctx, "xdr_permyriad_per_icp")
}

// CalculateICPFeeInE8s converts a fee in XDR permyriad to e8s.
func (s *Service) CalculateICPFeeInE8s(ctx context.Context, xdrFee uint64) (uint64, error) {
	r, err := s.rate(ctx, "calculate_icp_fee_in_e8s")
	if err != nil {
		return 0, err
	}
	return icpFeeInE8s(xdrFee, r)
}

// CyclesPerICPE8s returns the cycles bought by e8s.
func (s *Service) CyclesPerICPE8s(ctx context.Context, e8s *big.Int) (uint64, error) {
	cpi, err := s.CyclesPerICP(ctx)
	if err != nil {
		return 0, err
	}
	return cyclesForE8s(e8s, cpi), nil
}

// ICPPerCyclesE12s returns the e8s needed to buy e12s cycles.
func (s *Service) ICPPerCyclesE12s(ctx context.Context, e12s *big.Int) (*big.Int, error) {
	cpi, err := s.CyclesPerICP(ctx)
	if err != nil {
		return nil, err
	}
	return e8sForCycles(e12s, cpi), nil
}

// TopUpCanister sends amountE8s to the minting canister on behalf of
// canister and asks it to mint cycles. The notification outcome is
// returned as is; a failed notify is not retried.
func (s *Service) TopUpCanister(ctx context.Context, canister principal.Principal, amountE8s uint64) (*big.Int, error) {
	to := principal.NewAccountIdentifier(s.cmcID, principal.SubaccountFromPrincipal(canister))
	block, err := s.ledger.Transfer(ctx, "top_up_canister", to, amountE8s, MemoTopUpCanister)
	if err != nil {
		return nil, err
	}

	var minted *big.Int
	err = s.gate.Call(ctx, service, "notify_top_up", func(ctx context.Context) error {
		var err error
		minted, err = s.minting.NotifyTopUp(ctx, block, canister)
		return err
	})
	if err != nil {
		logger.L(ctx).Warn("top up notification failed",
			logger.Canister(canister),
			logger.Block(block),
			"error", err,
		)
		return nil, domain.External("top_up_canister", err).WithInfo("block", amount.U64(block).String())
	}

	logger.L(ctx).Info("canister topped up",
		logger.Canister(canister),
		logger.Block(block),
		"cycles", minted.String(),
	)
	return minted, nil
}

func cyclesPerICP(xdrPermyriad uint64) *big.Int {
	n := new(big.Int).SetUint64(xdrPermyriad)
	n.Mul(n, new(big.Int).SetUint64(TrillionCycles))
	return n.Quo(n, big.NewInt(10_000))
}

func icpFeeInE8s(xdrFee, xdrPermyriad uint64) (uint64, error) {
	if xdrPermyriad == 0 {
		return 0, domain.Unexpected("XDR conversion rate is zero").
			WithMethod("calculate_icp_fee_in_e8s").
			WithSource(domain.Source)
	}
	n := new(big.Int).SetUint64(xdrFee)
	n.Mul(n, big.NewInt(amount.E8s))
	n.Quo(n, new(big.Int).SetUint64(xdrPermyriad))
	return amount.NatToU64(n), nil
}

// cyclesForE8s scales through float64 the same way the minting UI does:
// ICP amount times cycles per ICP.
func cyclesForE8s(e8s, cpi *big.Int) uint64 {
	cycles := amount.E8sToF64(e8s) * amount.E8sToF64(cpi)
	return amount.NatToU64(amount.F64ToE8s(cycles))
}

func e8sForCycles(e12s, cpi *big.Int) *big.Int {
	trillionPerICP := amount.E8sToF64(cpi) / 10_000
	if trillionPerICP == 0 {
		return new(big.Int)
	}
	return amount.F64ToE8s(amount.E12sToF64(e12s) / trillionPerICP)
}
