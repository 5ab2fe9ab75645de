package domain

import (
	"github.com/yndnr/canikit-go/pkg/blob"
	"github.com/yndnr/canikit-go/pkg/principal"
)

// Wasm is a stored module together with its version.
type Wasm struct {
	Version   Version `json:"version"`
	Wasm      []byte  `json:"wasm"`
	CreatedAt uint64  `json:"created_at"`
}

// WasmResponse exposes a module by hash instead of bytes.
type WasmResponse struct {
	Version   Version `json:"version"`
	WasmHash  []byte  `json:"wasm_hash"`
	CreatedAt uint64  `json:"created_at"`
}

// NewWasm creates a Wasm record.
func NewWasm(wasm []byte, version Version, createdAt uint64) Wasm {
	return Wasm{Version: version, Wasm: wasm, CreatedAt: createdAt}
}

func (w Wasm) ToResponse() WasmResponse {
	return WasmResponse{
		Version:   w.Version,
		WasmHash:  blob.Checksum(w.Wasm),
		CreatedAt: w.CreatedAt,
	}
}

// WasmDetails records which module version is deployed without its bytes.
type WasmDetails struct {
	Version   Version `json:"version"`
	WasmHash  []byte  `json:"wasm_hash"`
	CreatedAt uint64  `json:"created_at"`
}

// NewWasmDetails hashes wasm and records version.
func NewWasmDetails(wasm []byte, version Version, createdAt uint64) WasmDetails {
	return WasmDetails{Version: version, WasmHash: blob.Checksum(wasm), CreatedAt: createdAt}
}

// CanisterEntry tracks a canister spawned by this canister.
type CanisterEntry struct {
	Version   *Version `json:"version,omitempty"`
	Wasm      []byte   `json:"wasm,omitempty"`
	CreatedAt uint64   `json:"created_at"`
	UpdatedAt uint64   `json:"updated_at"`
}

// CanisterEntryResponse is the public view of a CanisterEntry.
type CanisterEntryResponse struct {
	CanisterID principal.Principal `json:"canister_id"`
	Version    *Version            `json:"version,omitempty"`
	CreatedAt  uint64              `json:"created_at"`
	UpdatedAt  uint64              `json:"updated_at"`
}

// NewCanisterEntry creates an entry with no module attached.
func NewCanisterEntry(now uint64) CanisterEntry {
	return CanisterEntry{CreatedAt: now, UpdatedAt: now}
}

func (c CanisterEntry) ToResponse(id principal.Principal) CanisterEntryResponse {
	return CanisterEntryResponse{
		CanisterID: id,
		Version:    c.Version,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// NewCanisterArgs requests a new canister funded with ICP.
type NewCanisterArgs struct {
	ICPE8s *uint64 `json:"icp_e8s,omitempty"`
	Wasm   []byte  `json:"wasm,omitempty"`
	Args   []byte  `json:"args,omitempty"`
}
