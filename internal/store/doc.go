// Package store provides durable storage for run metadata.
//
// Runs live in a single SQLite table keyed by run path. All writes go
// through a Session, a thin bracket over one sql.Tx: the transaction
// coordinator opens a Session at scope entry and finalizes it exactly
// once at scope exit, committing on success and rolling back when any
// phase failed. Reads used by the CLI's listing commands go straight
// through the Store.
package store
