// Package output renders command results as a table, JSON or YAML, and
// reports byte progress for long transfers.
package output
