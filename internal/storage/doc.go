// Package storage provides entity repositories over stable memory.
//
// Each entity gets its own repository object holding the container handle
// and the diagnostic name used in errors:
//
//   - Repository: keyed access (query, insert by key, upsert, update, remove)
//   - AutoRepository: Repository with uint64 keys allocated on insert
//   - CellStorage: a single named value
//
// Every failure is a *domain.APIError carrying the method name, the info
// pair [entity, "storage"] and the canikit source tag. Mutations on one
// repository are serialized.
package storage
