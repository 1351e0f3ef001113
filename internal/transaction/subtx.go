package transaction

import (
	"context"
	"slices"

	"github.com/roach88/runledger/internal/runpath"
)

// subTransaction is the uniform surface the coordinator's phase loop
// drives. Five concrete types implement it, one per operation kind;
// the loop never special-cases a kind and skips any whose queue stayed
// empty.
type subTransaction interface {
	kind() Kind
	pending() int

	// sortQueue orders the queue by the natural path key.
	sortQueue()

	// validate inspects the whole queue at once against itself and
	// persisted state. Read-only: no database writes, no filesystem or
	// tmux effects.
	validate(ctx context.Context) error

	// execute performs each queued record's side effects in order,
	// failing fast on the first error.
	execute(ctx context.Context) error
}

// queue holds one kind's pending records. Append-only until the phase
// protocol runs; key extracts the path each record sorts by.
type queue[T any] struct {
	items []T
	key   func(T) runpath.Path
}

func (q *queue[T]) add(item T) { q.items = append(q.items, item) }

func (q *queue[T]) pending() int { return len(q.items) }

func (q *queue[T]) sortQueue() {
	slices.SortStableFunc(q.items, func(a, b T) int {
		return runpath.Compare(q.key(a), q.key(b))
	})
}

// executeAll runs exec over items in queue order, stopping at the first
// failure (fail-fast: a failed record aborts the rest of its kind).
func executeAll[T any](ctx context.Context, items []T, exec func(context.Context, T) error) error {
	for _, item := range items {
		if err := exec(ctx, item); err != nil {
			return err
		}
	}
	return nil
}
