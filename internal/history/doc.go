// Package history persists a journal of repair runs in SQLite so batch
// operators can audit what was scanned, repaired, and skipped without
// keeping terminal output around.
//
// Journaling is best-effort from the caller's perspective: a journal write
// failure is logged and never fails the repair run itself.
package history
