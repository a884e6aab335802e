// Package store provides a SQLite-backed catalog of rendered fragments.
//
// Each entry records the rendered query text and its parameters under a
// human-readable name. Entries are content addressed:
//
//   - fingerprint = SHA-256 over the canonical JSON of {query, params},
//     computed by internal/canonical with domain separation
//   - UNIQUE(fingerprint) makes Record idempotent; recording the same
//     rendering twice returns the first entry
//   - params are stored as canonical JSON TEXT
//   - listing orders by seq ASC, the insertion sequence
//
// The catalog never executes what it stores.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
