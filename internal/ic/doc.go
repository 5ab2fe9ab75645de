// Package ic groups the helpers that talk to the host runtime and to
// other canisters: host (caller, clock, call pacing), guard (access
// checks), ledger (ICP transfers), cycles (minting canister) and canister
// (management canister).
//
// Every helper that awaits an external call is an interleaving point:
// other messages may mutate storage while the call is in flight, so
// helpers never hold storage state across the call.
package ic
