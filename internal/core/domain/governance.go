package domain

import (
	"fmt"

	"github.com/yndnr/canikit-go/pkg/principal"
)

// GovernanceType is how a project decides on changes. The string form is
// what GovernanceConfig stores.
type GovernanceType string

const (
	GovernanceNone       GovernanceType = "governance::none"
	GovernancePermission GovernanceType = "governance::permission"
	GovernanceMember     GovernanceType = "governance::proposal::member"
	GovernanceToken      GovernanceType = "governance::proposal::token"
)

// ParseGovernanceType maps s to a GovernanceType. Unknown input is
// GovernanceNone.
func ParseGovernanceType(s string) GovernanceType {
	switch g := GovernanceType(s); g {
	case GovernancePermission, GovernanceMember, GovernanceToken:
		return g
	default:
		return GovernanceNone
	}
}

func (g GovernanceType) String() string { return string(g) }

// IsProposal reports whether changes go through proposals.
func (g GovernanceType) IsProposal() bool {
	return g == GovernanceMember || g == GovernanceToken
}

const (
	DefaultProposalDurationSeconds    uint64 = 60 * 60 * 24 * 2
	ProposalDurationLowerLimitSeconds uint64 = 60 * 60 * 24
	ProposalDurationUpperLimitSeconds uint64 = 60 * 60 * 24 * 4

	StatusFetchIntervalLowerLimitSeconds uint64 = 60 * 5
	StatusFetchIntervalUpperLimitSeconds uint64 = 60 * 60 * 24 * 365

	DefaultMaxLogEntries uint64 = 1000
)

// GovernanceConfig is the governance canister's settings.
type GovernanceConfig struct {
	ProposalDurationSeconds uint64              `json:"proposal_duration_seconds"`
	GovernanceType          *string             `json:"governance_type,omitempty"`
	ManagementCanisterID    principal.Principal `json:"management_canister_id"`
	IsPublic                bool                `json:"is_public"`
	Owner                   principal.Account   `json:"owner"`
	HotkeysEnabled          bool                `json:"hotkeys_enabled"`
	MaxLogEntries           uint64              `json:"max_log_entries"`
	UpdatedAt               uint64              `json:"updated_at"`
}

// NewGovernanceConfig returns the defaults: no governance, hotkeys on.
func NewGovernanceConfig(owner principal.Principal, isPublic bool, managementCanisterID principal.Principal) GovernanceConfig {
	return GovernanceConfig{
		ProposalDurationSeconds: DefaultProposalDurationSeconds,
		ManagementCanisterID:    managementCanisterID,
		IsPublic:                isPublic,
		Owner:                   principal.AccountOf(owner),
		HotkeysEnabled:          true,
		MaxLogEntries:           DefaultMaxLogEntries,
		UpdatedAt:               Clock(),
	}
}

// SetGovernance stores g. GovernanceNone clears the stored value.
func (c *GovernanceConfig) SetGovernance(g GovernanceType) (ActionValue, ActionValue) {
	old := deref(c.GovernanceType)
	if g == GovernanceNone {
		c.GovernanceType = nil
	} else {
		s := g.String()
		c.GovernanceType = &s
	}
	return StringValue(old), StringValue(g.String())
}

// Governance returns the stored governance type.
func (c GovernanceConfig) Governance() GovernanceType {
	if c.GovernanceType == nil {
		return GovernanceNone
	}
	return ParseGovernanceType(*c.GovernanceType)
}

func (c GovernanceConfig) IsProposalBased() bool { return c.Governance().IsProposal() }
func (c GovernanceConfig) IsTokenBased() bool    { return c.Governance() == GovernanceToken }

func (c *GovernanceConfig) SetProposalDurationSeconds(v uint64) (ActionValue, ActionValue) {
	old := c.ProposalDurationSeconds
	c.ProposalDurationSeconds = v
	return NumberValue(old), NumberValue(v)
}

func (c *GovernanceConfig) SetMaxLogEntries(v uint64) (ActionValue, ActionValue) {
	old := c.MaxLogEntries
	c.MaxLogEntries = v
	return NumberValue(old), NumberValue(v)
}

func (c *GovernanceConfig) SetPublicity(v bool) (ActionValue, ActionValue) {
	old := c.IsPublic
	c.IsPublic = v
	return BoolValue(old), BoolValue(v)
}

// SetOwner replaces the owner. The change is reported by owner principal.
func (c *GovernanceConfig) SetOwner(v principal.Account) (ActionValue, ActionValue) {
	old := c.Owner
	c.Owner = v
	return PrincipalValue(old.Owner), PrincipalValue(v.Owner)
}

func (c *GovernanceConfig) SetHotkeysEnabled(v bool) (ActionValue, ActionValue) {
	old := c.HotkeysEnabled
	c.HotkeysEnabled = v
	return BoolValue(old), BoolValue(v)
}

// CheckProposalDuration rejects durations outside one to four days.
func CheckProposalDuration(seconds uint64) error {
	return checkSeconds("proposal_duration_seconds", seconds,
		ProposalDurationLowerLimitSeconds, ProposalDurationUpperLimitSeconds)
}

// CheckStatusFetchInterval rejects intervals outside five minutes to a year.
func CheckStatusFetchInterval(seconds uint64) error {
	return checkSeconds("canister_status_fetch_interval_seconds", seconds,
		StatusFetchIntervalLowerLimitSeconds, StatusFetchIntervalUpperLimitSeconds)
}

func checkSeconds(field string, v, min, max uint64) error {
	if v < min || v > max {
		return ValidationFailed([]ValidationResponse{{
			Field:   field,
			Message: fmt.Sprintf("must be between %d and %d seconds", min, max),
		}})
	}
	return nil
}
