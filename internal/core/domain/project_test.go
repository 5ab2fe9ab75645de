package domain

import (
	"testing"

	"github.com/yndnr/canikit-go/pkg/principal"
)

func fixClock(t *testing.T, now uint64) {
	t.Helper()
	prev := Clock
	Clock = func() uint64 { return now }
	t.Cleanup(func() { Clock = prev })
}

func strPtr(s string) *string { return &s }

func TestProjectInitArgs_Validate(t *testing.T) {
	tests := []struct {
		name    string
		args    ProjectInitArgs
		wantErr bool
	}{
		{"valid", ProjectInitArgs{Name: "canikit", Logo: "aGk="}, false},
		{"short name", ProjectInitArgs{Name: "ck", Logo: "aGk="}, true},
		{"missing logo", ProjectInitArgs{Name: "canikit"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.args.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			ae, _ := AsAPIError(err)
			if ae.Type != TypeBadRequest || ae.MethodName != "validate" || ae.Source != Source {
				t.Errorf("Validate() = %+v", ae)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	fixClock(t, 10)
	owner := principal.MustFromText("aaaaa-aa")
	m := NewMetadata("canikit", "tools", "aGk=", nil, owner)
	if m.CreatedAt != 10 || m.UpdatedAt != 10 || !m.CreatedBy.Owner.Equal(owner) {
		t.Fatalf("NewMetadata() = %+v", m)
	}

	t.Run("update keeps unset fields", func(t *testing.T) {
		fixClock(t, 20)
		if err := m.Update(UpdateMetadata{Description: strPtr("kit")}); err != nil {
			t.Fatal(err)
		}
		r := m.ToResponse()
		if r.Name != "canikit" || r.Description != "kit" || r.Logo != "aGk=" || r.UpdatedAt != 20 {
			t.Errorf("ToResponse() = %+v", r)
		}
		if r.URL == nil || *r.URL != "" {
			t.Errorf("URL = %v, want empty", r.URL)
		}
	})

	t.Run("invalid update changes nothing", func(t *testing.T) {
		before := m.ToResponse()
		if err := m.Update(UpdateMetadata{Name: strPtr("x")}); !IsType(err, TypeBadRequest) {
			t.Fatalf("Update() = %v", err)
		}
		if after := m.ToResponse(); after.Name != before.Name || after.UpdatedAt != before.UpdatedAt {
			t.Errorf("metadata changed: %+v", after)
		}
	})

	t.Run("setters report old and new", func(t *testing.T) {
		old, next := m.UpdateName("renamed")
		if old.String != "canikit" || next.String != "renamed" {
			t.Errorf("UpdateName() = %v, %v", old, next)
		}
		old, next = m.UpdateWebsite(nil)
		if old.Kind != ActionString || old.String != "" || next.String != "" || m.URL != nil {
			t.Errorf("UpdateWebsite(nil) = %v, %v", old, next)
		}
		old, next = m.UpdateWebsite(strPtr("https://canikit.dev"))
		if old.String != "" || next.String != "https://canikit.dev" {
			t.Errorf("UpdateWebsite() = %v, %v", old, next)
		}
	})

	d := DefaultMetadata().ToResponse()
	if !d.CreatedBy.Owner.IsAnonymous() || d.Name != "" || d.URL != nil {
		t.Errorf("DefaultMetadata() = %+v", d)
	}
}

func TestGovernanceType(t *testing.T) {
	tests := []struct {
		in       string
		want     GovernanceType
		proposal bool
	}{
		{"governance::none", GovernanceNone, false},
		{"governance::permission", GovernancePermission, false},
		{"governance::proposal::member", GovernanceMember, true},
		{"governance::proposal::token", GovernanceToken, true},
		{"governance::other", GovernanceNone, false},
		{"", GovernanceNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g := ParseGovernanceType(tt.in)
			if g != tt.want || g.IsProposal() != tt.proposal {
				t.Errorf("ParseGovernanceType(%q) = %s", tt.in, g)
			}
		})
	}
}

func TestGovernanceConfig(t *testing.T) {
	fixClock(t, 5)
	owner := principal.MustFromText("aaaaa-aa")
	c := NewGovernanceConfig(owner, true, principal.Anonymous())
	if c.ProposalDurationSeconds != DefaultProposalDurationSeconds || c.MaxLogEntries != DefaultMaxLogEntries {
		t.Errorf("defaults = %+v", c)
	}
	if !c.HotkeysEnabled || c.UpdatedAt != 5 || c.Governance() != GovernanceNone {
		t.Errorf("defaults = %+v", c)
	}

	old, next := c.SetGovernance(GovernanceToken)
	if old.String != "" || next.String != "governance::proposal::token" {
		t.Errorf("SetGovernance() = %v, %v", old, next)
	}
	if !c.IsProposalBased() || !c.IsTokenBased() {
		t.Error("token governance should be proposal and token based")
	}
	c.SetGovernance(GovernanceNone)
	if c.GovernanceType != nil || c.IsProposalBased() {
		t.Errorf("GovernanceType = %v", c.GovernanceType)
	}

	old, next = c.SetOwner(principal.AccountOf(principal.Anonymous()))
	if old.Kind != ActionPrincipal || !old.Principal.Equal(owner) || !next.Principal.IsAnonymous() {
		t.Errorf("SetOwner() = %v, %v", old, next)
	}
	if old, next := c.SetHotkeysEnabled(false); !old.Bool || next.Bool {
		t.Errorf("SetHotkeysEnabled() = %v, %v", old, next)
	}
	if old, next := c.SetMaxLogEntries(50); old.Number != DefaultMaxLogEntries || next.Number != 50 {
		t.Errorf("SetMaxLogEntries() = %v, %v", old, next)
	}
}

func TestCheckDurations(t *testing.T) {
	day := uint64(60 * 60 * 24)
	tests := []struct {
		name  string
		check func(uint64) error
		v     uint64
		ok    bool
	}{
		{"proposal lower limit", CheckProposalDuration, day, true},
		{"proposal too short", CheckProposalDuration, day - 1, false},
		{"proposal upper limit", CheckProposalDuration, 4 * day, true},
		{"proposal too long", CheckProposalDuration, 4*day + 1, false},
		{"interval lower limit", CheckStatusFetchInterval, 300, true},
		{"interval too short", CheckStatusFetchInterval, 299, false},
		{"interval too long", CheckStatusFetchInterval, 366 * day, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.v)
			if tt.ok && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if !tt.ok && !IsType(err, TypeValidationError) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestManagementConfig(t *testing.T) {
	fixClock(t, 7)
	gov := principal.MustFromText("aaaaa-aa")
	c := NewManagementConfig(gov, principal.Anonymous(), gov)
	if c.CanisterStatusFetchIntervalSeconds != DefaultStatusFetchIntervalSeconds || c.IsPublic {
		t.Errorf("defaults = %+v", c)
	}
	if c.SNSWCanisterID.String() != "qaa6y-5yaaa-aaaaa-aaafa-cai" || c.CreatedAt != 7 || c.UpgradedAt != 7 {
		t.Errorf("defaults = %+v", c)
	}
	if c.LedgerCanisterID != nil {
		t.Error("ledger canister should be unset")
	}

	c.SetLedgerCanisterID(gov)
	c.SetIndexCanisterID(gov)
	if c.LedgerCanisterID == nil || !c.IndexCanisterID.Equal(gov) {
		t.Errorf("canister ids = %v, %v", c.LedgerCanisterID, c.IndexCanisterID)
	}
	if old, next := c.SetPublic(true); old.Bool || !next.Bool || !c.IsPublic {
		t.Errorf("SetPublic() = %v, %v", old, next)
	}
	if old, next := c.SetStatusFetchInterval(600); old.Number != 3600 || next.Number != 600 {
		t.Errorf("SetStatusFetchInterval() = %v, %v", old, next)
	}
	if old, next := c.SetUpgradedAt(9); old.Number != 7 || next.Number != 9 {
		t.Errorf("SetUpgradedAt() = %v, %v", old, next)
	}
}

func TestProjectRegistryEntry(t *testing.T) {
	fixClock(t, 3)
	gov := principal.MustFromText("aaaaa-aa")
	e := NewProjectRegistryEntry(PostProjectRegistryEntry{
		GovernanceCanisterID: gov,
		Name:                 "canikit",
		URL:                  "https://canikit.dev",
		IsPublic:             true,
	})
	if e.CreatedAt != 3 || e.UpdatedAt != 3 {
		t.Errorf("timestamps = %d, %d", e.CreatedAt, e.UpdatedAt)
	}

	r := e.ToResponse(principal.Anonymous())
	if !r.ManagementCanisterID.IsAnonymous() || !r.GovernanceCanisterID.Equal(gov) {
		t.Errorf("ToResponse() = %+v", r)
	}
	if r.Name != "canikit" || r.URL != "https://canikit.dev" || !r.IsPublic {
		t.Errorf("ToResponse() = %+v", r)
	}
}
