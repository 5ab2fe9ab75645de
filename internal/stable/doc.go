// Package stable provides the persistent memory that canikit repositories
// are built on.
//
// One Badger database holds the whole memory space. The space is split into
// regions identified by a MemoryID; every key of a region starts with the
// region byte, so regions never overlap and iteration inside a region follows
// encoded key order.
//
// Containers:
//
//   - Map: ordered key-value container over one region
//   - Cell: a single optional value stored in one region
//
// Region ids are assigned once and must stay stable across upgrades: moving
// an entity to another id orphans its data.
package stable
