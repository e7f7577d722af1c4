// Package project holds the in-memory authoritative state for the one
// active project and funnels every mutation through an explicit API.
//
// A Session owns zero or one active Project. Each mutation is a pure
// replacement: the current snapshot is cloned, the change is applied to
// the clone, the last-modified stamp is refreshed, and the clone becomes
// the new current value before being written through to the persistence
// gateway. Readers therefore only ever observe the pre-mutation or the
// fully-post-mutation snapshot.
//
// Sessions are single-goroutine by contract. All entry points run to
// completion without interleaving; there are no locks because there is
// nothing to guard. The only suspending work in the system - advisory
// backend calls - happens outside the session and re-enters through the
// applicator, which checks for staleness first.
//
// Failure semantics: operations on an empty session are safe no-ops.
// Lookups for unknown identifiers set an observable error without
// touching the active project. Persistence failures are logged and
// swallowed; the in-memory state stays authoritative until the next
// successful write.
package project
