// Package sqlite implements the SlotStore driven port on a local
// SQLite database. Each named slot maps to one row; writes are
// last-write-wins upserts.
package sqlite
