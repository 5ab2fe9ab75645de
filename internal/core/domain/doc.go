// Package domain defines the shared model of canikit.
//
// It holds the APIError taxonomy every layer reports failures with, the
// paged response envelope, the audit log entry, module versions and the
// input validators. The package has no storage or runtime dependencies.
package domain
