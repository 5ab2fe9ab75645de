// Package canister creates canisters and installs code through the
// management canister.
package canister

import (
	"context"
	"fmt"
	"math/big"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/internal/ic/host"
	"github.com/yndnr/canikit-go/internal/telemetry/logger"
	"github.com/yndnr/canikit-go/pkg/blob"
	"github.com/yndnr/canikit-go/pkg/principal"
)

const service = "management"

// InstallMode selects how code is installed.
type InstallMode uint8

const (
	Install InstallMode = iota
	Reinstall
	Upgrade
)

func (m InstallMode) String() string {
	switch m {
	case Install:
		return "install"
	case Reinstall:
		return "reinstall"
	case Upgrade:
		return "upgrade"
	}
	return fmt.Sprintf("InstallMode(%d)", m)
}

// ParseInstallMode parses the String form of a mode.
func ParseInstallMode(s string) (InstallMode, error) {
	for _, m := range []InstallMode{Install, Reinstall, Upgrade} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown install mode %q", s)
}

// Settings are the canister settings applied at creation.
type Settings struct {
	Controllers []principal.Principal `json:"controllers,omitempty"`
}

// CreateArgs is the argument of CreateCanister.
type CreateArgs struct {
	Settings *Settings `json:"settings,omitempty"`
}

// InstallArgs is the argument of InstallCode.
type InstallArgs struct {
	Mode       InstallMode         `json:"mode"`
	CanisterID principal.Principal `json:"canister_id"`
	WasmModule []byte              `json:"wasm_module"`
	Arg        []byte              `json:"arg"`
}

// StatusResponse is the subset of canister_status helpers read.
type StatusResponse struct {
	Status     string   `json:"status"`
	Settings   Settings `json:"settings"`
	ModuleHash []byte   `json:"module_hash,omitempty"`
	MemorySize *big.Int `json:"memory_size,omitempty"`
	Cycles     *big.Int `json:"cycles,omitempty"`
}

// ManagementClient is the management canister interface.
type ManagementClient interface {
	CreateCanister(ctx context.Context, args CreateArgs, cycles uint64) (principal.Principal, error)
	InstallCode(ctx context.Context, args InstallArgs) error
	CanisterStatus(ctx context.Context, id principal.Principal) (StatusResponse, error)
}

// Service wraps a management client.
type Service struct {
	client ManagementClient
	gate   *host.Gate
}

// NewService creates a service. gate may be nil.
func NewService(client ManagementClient, gate *host.Gate) *Service {
	if gate == nil {
		gate = host.Unlimited()
	}
	return &Service{client: client, gate: gate}
}

// DeployCanister creates an empty canister funded with cycles and
// controlled by controllers.
func (s *Service) DeployCanister(ctx context.Context, cycles uint64, controllers []principal.Principal) (principal.Principal, error) {
	args := CreateArgs{Settings: &Settings{Controllers: controllers}}

	var id principal.Principal
	err := s.gate.Call(ctx, service, "create_canister", func(ctx context.Context) error {
		var err error
		id, err = s.client.CreateCanister(ctx, args, cycles)
		return err
	})
	if err != nil {
		return principal.Principal{}, domain.External("deploy_canister", err)
	}

	logger.ForCanister(logger.L(ctx), id).Info("canister created", "cycles", cycles)
	return id, nil
}

// InstallCanister installs wasm into id. A nil arg is sent as empty.
func (s *Service) InstallCanister(ctx context.Context, id principal.Principal, wasm []byte, mode InstallMode, arg []byte) (principal.Principal, error) {
	if arg == nil {
		arg = []byte{}
	}
	args := InstallArgs{Mode: mode, CanisterID: id, WasmModule: wasm, Arg: arg}

	err := s.gate.Call(ctx, service, "install_code", func(ctx context.Context) error {
		return s.client.InstallCode(ctx, args)
	})
	if err != nil {
		return principal.Principal{}, domain.External("install_canister", err)
	}

	logger.ForCanister(logger.L(ctx), id).Info("canister code installed",
		"mode", mode.String(),
		"module_hash", blob.ChecksumHex(wasm),
	)
	return id, nil
}

// GetControllers returns the controllers of id, or an empty list when the
// status call fails.
func (s *Service) GetControllers(ctx context.Context, id principal.Principal) []principal.Principal {
	var status StatusResponse
	err := s.gate.Call(ctx, service, "canister_status", func(ctx context.Context) error {
		var err error
		status, err = s.client.CanisterStatus(ctx, id)
		return err
	})
	if err != nil {
		logger.ForCanister(logger.L(ctx), id).Debug("canister status failed", "error", err)
		return []principal.Principal{}
	}
	if status.Settings.Controllers == nil {
		return []principal.Principal{}
	}
	return status.Settings.Controllers
}
