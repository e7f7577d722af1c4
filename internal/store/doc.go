// Package store is the persistence gateway: a SQLite-backed document
// store for project snapshots plus the "current project" pointer.
//
// The storage layout is two logical collections:
//   - projects: one row per project, the full aggregate serialized as a
//     JSON document (last writer wins, no conflict resolution)
//   - meta: a key/value table holding the current project id
//
// Persistence is synchronous and best-effort. There is no transaction
// log and no versioned history; callers treat a failed write as a
// warning, keeping the in-memory state authoritative until the next
// successful save. A corrupt or unparseable stored document is treated
// as "no data" and skipped, never surfaced as a fatal error.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
