package domain

import "github.com/yndnr/canikit-go/pkg/principal"

// PostProjectRegistryEntry is the request to register a project.
type PostProjectRegistryEntry struct {
	GovernanceCanisterID principal.Principal `json:"governance_canister_id"`
	Name                 string              `json:"name"`
	Description          string              `json:"description"`
	URL                  string              `json:"url"`
	IsPublic             bool                `json:"is_public"`
}

// ProjectRegistryEntry is a registered project.
type ProjectRegistryEntry struct {
	GovernanceCanisterID principal.Principal `json:"governance_canister_id"`
	Name                 string              `json:"name"`
	Description          string              `json:"description"`
	URL                  string              `json:"url"`
	IsPublic             bool                `json:"is_public"`
	UpdatedAt            uint64              `json:"updated_at"`
	CreatedAt            uint64              `json:"created_at"`
}

// ProjectRegistryEntryResponse adds the management canister the entry is
// stored under.
type ProjectRegistryEntryResponse struct {
	ManagementCanisterID principal.Principal `json:"management_canister_id"`
	GovernanceCanisterID principal.Principal `json:"governance_canister_id"`
	Name                 string              `json:"name"`
	Description          string              `json:"description"`
	URL                  string              `json:"url"`
	IsPublic             bool                `json:"is_public"`
	UpdatedAt            uint64              `json:"updated_at"`
	CreatedAt            uint64              `json:"created_at"`
}

// NewProjectRegistryEntry stamps p with the current time.
func NewProjectRegistryEntry(p PostProjectRegistryEntry) ProjectRegistryEntry {
	now := Clock()
	return ProjectRegistryEntry{
		GovernanceCanisterID: p.GovernanceCanisterID,
		Name:                 p.Name,
		Description:          p.Description,
		URL:                  p.URL,
		IsPublic:             p.IsPublic,
		UpdatedAt:            now,
		CreatedAt:            now,
	}
}

func (e ProjectRegistryEntry) ToResponse(management principal.Principal) ProjectRegistryEntryResponse {
	return ProjectRegistryEntryResponse{
		ManagementCanisterID: management,
		GovernanceCanisterID: e.GovernanceCanisterID,
		Name:                 e.Name,
		Description:          e.Description,
		URL:                  e.URL,
		IsPublic:             e.IsPublic,
		UpdatedAt:            e.UpdatedAt,
		CreatedAt:            e.CreatedAt,
	}
}
