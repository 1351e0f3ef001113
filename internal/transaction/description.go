package transaction

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/runledger/internal/runpath"
)

// descriptionChangeTransaction edits run descriptions with an
// optimistic-conflict check: the record carries the description the
// caller read, and validation rejects the edit when the persisted value
// has drifted since.
type descriptionChangeTransaction struct {
	queue[DescriptionChange]
	db Database
}

func newDescriptionChangeTransaction(db Database) *descriptionChangeTransaction {
	t := &descriptionChangeTransaction{db: db}
	t.queue.key = func(c DescriptionChange) runpath.Path { return c.Path }
	return t
}

func (t *descriptionChangeTransaction) kind() Kind { return KindDescriptionChange }

func (t *descriptionChangeTransaction) validate(ctx context.Context) error {
	seen := make(map[runpath.Path]bool, len(t.items))
	for _, c := range t.items {
		if seen[c.Path] {
			return validationErrorf(KindDescriptionChange, c.Path, "queued twice")
		}
		seen[c.Path] = true

		entry, found, err := t.db.Entry(ctx, c.Path.String())
		if err != nil {
			return err
		}
		if !found {
			return validationErrorf(KindDescriptionChange, c.Path, "no such run")
		}
		if entry.FullCommand != c.FullCommand {
			return validationErrorf(KindDescriptionChange, c.Path, "command does not match the recorded run")
		}
		// NFC-normalized comparison: visually identical descriptions
		// entered through different editors must not trip the check.
		if norm.NFC.String(entry.Description) != norm.NFC.String(c.OldDescription) {
			return validationErrorf(KindDescriptionChange, c.Path,
				"description changed since it was read (have %q, expected %q)",
				entry.Description, c.OldDescription)
		}
	}
	return nil
}

func (t *descriptionChangeTransaction) execute(ctx context.Context) error {
	return executeAll(ctx, t.items, t.executeOne)
}

func (t *descriptionChangeTransaction) executeOne(ctx context.Context, c DescriptionChange) error {
	if err := t.db.UpdateDescription(ctx, c.Path.String(), c.NewDescription); err != nil {
		return executionError(KindDescriptionChange, c.Path, err)
	}
	return nil
}
