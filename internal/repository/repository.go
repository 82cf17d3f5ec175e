// Package repository handles all interactions with the item storage.
//
// Three stores implement ItemStore: RestItemRepository talks to a PostgREST
// data API, PostgresItemRepository runs SQL over a pgx pool and
// MemoryItemRepository keeps items in process. All three share the same
// filter and ordering semantics so the service layer never needs to know
// which one it has.
package repository

// Store operation names, used in logs and metrics.
const (
	OpList   = "list"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
	OpPing   = "ping"
)
