// Package main provides the entry point for canikit.
//
// canikit inspects and maintains the stable memory of a canister
// toolkit deployment, validates modules before installation, and
// converts principals and ledger amounts.
package main
