package domain

import "github.com/yndnr/canikit-go/pkg/principal"

// DefaultStatusFetchIntervalSeconds is how often canister status is
// refreshed unless configured otherwise.
const DefaultStatusFetchIntervalSeconds uint64 = 60 * 60

// SNSWasmCanister is the SNS wasm modules canister on mainnet.
var SNSWasmCanister = principal.MustFromText("qaa6y-5yaaa-aaaaa-aaafa-cai")

// ManagementConfig is the management canister's settings.
type ManagementConfig struct {
	LedgerCanisterID                   *principal.Principal `json:"ledger_canister_id,omitempty"`
	IndexCanisterID                    *principal.Principal `json:"index_canister_id,omitempty"`
	GovernanceCanisterID               principal.Principal  `json:"governance_canister_id"`
	DeployerCanisterID                 principal.Principal  `json:"deployer_canister_id"`
	SNSWCanisterID                     principal.Principal  `json:"snsw_canister_id"`
	CanisterStatusFetchIntervalSeconds uint64               `json:"canister_status_fetch_interval_seconds"`
	DeployedBy                         principal.Principal  `json:"deployed_by"`
	IsPublic                           bool                 `json:"is_public"`
	UpgradedAt                         uint64               `json:"upgraded_at"`
	CreatedAt                          uint64               `json:"created_at"`
}

// NewManagementConfig returns a private config deployed by deployedBy
// through the deployer canister.
func NewManagementConfig(governance, deployer, deployedBy principal.Principal) ManagementConfig {
	now := Clock()
	return ManagementConfig{
		GovernanceCanisterID:               governance,
		DeployerCanisterID:                 deployer,
		SNSWCanisterID:                     SNSWasmCanister,
		CanisterStatusFetchIntervalSeconds: DefaultStatusFetchIntervalSeconds,
		DeployedBy:                         deployedBy,
		UpgradedAt:                         now,
		CreatedAt:                          now,
	}
}

func (c *ManagementConfig) SetUpgradedAt(v uint64) (ActionValue, ActionValue) {
	old := c.UpgradedAt
	c.UpgradedAt = v
	return NumberValue(old), NumberValue(v)
}

func (c *ManagementConfig) SetStatusFetchInterval(v uint64) (ActionValue, ActionValue) {
	old := c.CanisterStatusFetchIntervalSeconds
	c.CanisterStatusFetchIntervalSeconds = v
	return NumberValue(old), NumberValue(v)
}

func (c *ManagementConfig) SetPublic(v bool) (ActionValue, ActionValue) {
	old := c.IsPublic
	c.IsPublic = v
	return BoolValue(old), BoolValue(v)
}

func (c *ManagementConfig) SetLedgerCanisterID(id principal.Principal) { c.LedgerCanisterID = &id }
func (c *ManagementConfig) SetIndexCanisterID(id principal.Principal)  { c.IndexCanisterID = &id }
