// Package transaction coordinates structural changes to runs across the
// database, the filesystem, and tmux.
//
// A Transaction collects pending operations into five typed queues, one
// per operation kind: description-change, interrupt, removal, move,
// new-run. Nothing touches the outside world while records are added.
// At scope exit the coordinator runs three phases over the non-empty
// queues, each phase finishing for every kind before the next starts:
//
//  1. sort - each queue is ordered by the natural path key
//  2. validate - read-only conflict checks over each whole queue
//  3. execute - records run in order, kinds in the fixed order above
//
// A validation failure in any kind aborts before a single side effect
// in any kind. That is the only full atomicity this package offers:
// the database, the filesystem, and tmux share no transaction log, so
// once execution starts a failure rolls back the database session but
// leaves filesystem and tmux effects already applied in place. This is
// a deliberate best-effort boundary. Execution is fail-fast: the first
// failed record aborts the rest of its queue and all later kinds.
//
// The coordinator is single-use and single-threaded; callers must not
// run two scopes concurrently against the same root.
package transaction
