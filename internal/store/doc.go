// Package store provides SQLite-backed storage for translation runs.
//
// Two tables live in one database file:
//   - runs: one row per translation attempt, successful or not
//   - outputs: the printed program for an input hash, used as a cache
//
// Input hashes come from bpl.InputHash, which folds in the translator and
// IR versions, so a cached output is never served to a different version.
//
// Rows are ordered by a logical seq column (MAX(seq)+1 on insert), never by
// wall time, so listings are deterministic for a given sequence of writes.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
