package canister

import (
	"context"
	"errors"
	"testing"

	"github.com/yndnr/canikit-go/internal/core/domain"
	"github.com/yndnr/canikit-go/pkg/principal"
)

var created = principal.MustFromText("ryjl3-tyaaa-aaaaa-aaaba-cai")

type fakeManagement struct {
	createArgs []CreateArgs
	cycles     []uint64
	installs   []InstallArgs
	status     StatusResponse
	err        error
}

func (f *fakeManagement) CreateCanister(_ context.Context, args CreateArgs, cycles uint64) (principal.Principal, error) {
	if f.err != nil {
		return principal.Principal{}, f.err
	}
	f.createArgs = append(f.createArgs, args)
	f.cycles = append(f.cycles, cycles)
	return created, nil
}

func (f *fakeManagement) InstallCode(_ context.Context, args InstallArgs) error {
	if f.err != nil {
		return f.err
	}
	f.installs = append(f.installs, args)
	return nil
}

func (f *fakeManagement) CanisterStatus(context.Context, principal.Principal) (StatusResponse, error) {
	return f.status, f.err
}

func TestDeployCanister(t *testing.T) {
	f := &fakeManagement{}
	s := NewService(f, nil)
	ctrl := []principal.Principal{principal.ManagementCanister()}

	id, err := s.DeployCanister(context.Background(), 3_000_000_000_000, ctrl)
	if err != nil {
		t.Fatal(err)
	}
	if !id.Equal(created) {
		t.Errorf("id = %s", id)
	}
	if f.cycles[0] != 3_000_000_000_000 {
		t.Errorf("cycles = %d", f.cycles[0])
	}
	if s := f.createArgs[0].Settings; s == nil || len(s.Controllers) != 1 {
		t.Errorf("settings = %+v", s)
	}

	f.err = errors.New("out of cycles")
	_, err = s.DeployCanister(context.Background(), 1, nil)
	ae, ok := domain.AsAPIError(err)
	if !ok || ae.Type != domain.TypeExternalServiceError || ae.MethodName != "deploy_canister" || ae.Message != "out of cycles" {
		t.Errorf("err = %v", err)
	}
}

func TestInstallCanister(t *testing.T) {
	f := &fakeManagement{}
	s := NewService(f, nil)
	wasm := []byte("\x00asm\x01\x00\x00\x00")

	id, err := s.InstallCanister(context.Background(), created, wasm, Upgrade, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !id.Equal(created) {
		t.Errorf("id = %s", id)
	}
	args := f.installs[0]
	if args.Mode != Upgrade || string(args.WasmModule) != string(wasm) {
		t.Errorf("args = %+v", args)
	}
	if args.Arg == nil || len(args.Arg) != 0 {
		t.Errorf("nil arg should be sent as empty, got %#v", args.Arg)
	}

	f.err = errors.New("module invalid")
	if _, err := s.InstallCanister(context.Background(), created, wasm, Install, []byte{1}); !errors.Is(err, domain.ErrExternalService) {
		t.Errorf("err = %v", err)
	}
}

func TestGetControllers(t *testing.T) {
	ctrl := []principal.Principal{created, principal.ManagementCanister()}

	tests := []struct {
		name string
		f    *fakeManagement
		want int
	}{
		{"ok", &fakeManagement{status: StatusResponse{Settings: Settings{Controllers: ctrl}}}, 2},
		{"none", &fakeManagement{}, 0},
		{"error degrades to empty", &fakeManagement{err: errors.New("not a controller")}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewService(tt.f, nil).GetControllers(context.Background(), created)
			if got == nil || len(got) != tt.want {
				t.Errorf("GetControllers() = %#v, want %d entries", got, tt.want)
			}
		})
	}
}

func TestInstallMode(t *testing.T) {
	for _, m := range []InstallMode{Install, Reinstall, Upgrade} {
		t.Run(m.String(), func(t *testing.T) {
			got, err := ParseInstallMode(m.String())
			if err != nil || got != m {
				t.Errorf("ParseInstallMode(%q) = %v, %v", m.String(), got, err)
			}
		})
	}
	if _, err := ParseInstallMode("replace"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
