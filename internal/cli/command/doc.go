// Package command defines the canikit command tree.
//
// Commands operate on a local stable memory directory, so a canister's
// persisted state can be inspected, backed up and restored offline, and
// provide the encoding helpers used when preparing deployments.
package command
