// Package advisor produces analyses, modification plans, and chat replies
// for a project. A remote language-model backend is optional: without one
// (or whenever the remote call fails, times out, or returns something the
// parser cannot use) every operation is served by a deterministic heuristic
// engine, so the advisory surface never errors out of the user's way.
package advisor
