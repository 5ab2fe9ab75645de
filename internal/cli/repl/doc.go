// Package repl runs canikit commands interactively.
//
// Each input line is split into arguments and handed to an executor, which
// is normally a fresh CLI application run. Lines are kept in a bounded
// history that can be persisted between sessions.
package repl
