package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(path string) Run {
	return Run{
		Path:         path,
		FullCommand:  "python train.py --lr 0.1",
		Commit:       "0123456789abcdef0123456789abcdef01234567",
		CreatedAt:    time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC),
		Description:  "baseline",
		InputCommand: "python train.py",
	}
}

func TestSession_InsertAndEntry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	want := testRun("exp/1")
	if err := sess.InsertRun(ctx, want); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	// The session sees its own uncommitted write.
	got, found, err := sess.Entry(ctx, "exp/1")
	if err != nil {
		t.Fatalf("Entry() failed: %v", err)
	}
	if !found {
		t.Fatal("Entry() did not find uncommitted insert")
	}
	if got != want {
		t.Errorf("Entry() = %+v, want %+v", got, want)
	}

	if err := sess.Close(nil); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// Committed: visible through the store.
	got, found, err = s.Entry(ctx, "exp/1")
	if err != nil {
		t.Fatalf("store Entry() failed: %v", err)
	}
	if !found {
		t.Fatal("committed run not found")
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v (nanosecond precision must round-trip)", got.CreatedAt, want.CreatedAt)
	}
}

func TestSession_CloseWithCauseRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if err := sess.InsertRun(ctx, testRun("exp/1")); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}

	if err := sess.Close(errors.New("validation failed")); err != nil {
		t.Fatalf("Close(cause) returned %v, want nil", err)
	}

	found, err := s.Exists(ctx, "exp/1")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if found {
		t.Error("rolled-back insert is visible")
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	tx := &fakeTx{}
	sess := &Session{tx: tx}

	if err := sess.Close(nil); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := sess.Close(nil); err != nil {
		t.Fatalf("second Close() failed: %v", err)
	}
	if err := sess.Close(errors.New("late error")); err != nil {
		t.Fatalf("third Close() failed: %v", err)
	}

	if tx.commits != 1 {
		t.Errorf("commits = %d, want 1", tx.commits)
	}
	if tx.rollbacks != 0 {
		t.Errorf("rollbacks = %d, want 0", tx.rollbacks)
	}
}

func TestSession_UpdatePath(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if err := sess.InsertRun(ctx, testRun("exp/old")); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if err := sess.UpdatePath(ctx, "exp/old", "exp/new"); err != nil {
		t.Fatalf("UpdatePath() failed: %v", err)
	}
	if err := sess.Close(nil); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if found, _ := s.Exists(ctx, "exp/old"); found {
		t.Error("old path still exists after rename")
	}
	if found, _ := s.Exists(ctx, "exp/new"); !found {
		t.Error("new path missing after rename")
	}
}

func TestSession_UpdatePath_MissingRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	defer sess.Close(errors.New("test done"))

	if err := sess.UpdatePath(ctx, "no/such", "other"); err == nil {
		t.Error("UpdatePath() of missing run should fail")
	}
}

func TestSession_DeleteRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if err := sess.InsertRun(ctx, testRun("exp/1")); err != nil {
		t.Fatalf("InsertRun() failed: %v", err)
	}
	if err := sess.DeleteRun(ctx, "exp/1"); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if err := sess.DeleteRun(ctx, "exp/1"); err == nil {
		t.Error("second DeleteRun() should fail: no such run")
	}
	sess.Close(errors.New("test done"))
}

func TestStore_ListAndDescendants(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	for _, p := range []string{"exp/1", "exp/10", "exp/2", "other", "exp2/1"} {
		if err := sess.InsertRun(ctx, testRun(p)); err != nil {
			t.Fatalf("InsertRun(%q) failed: %v", p, err)
		}
	}
	if err := sess.Close(nil); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// Prefix listing respects component boundaries: "exp" must not
	// match "exp2/1".
	runs, err := s.List(ctx, "exp")
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("List(exp) returned %d runs, want 3", len(runs))
	}

	desc, err := s.DescendantsOf(ctx, "exp")
	if err != nil {
		t.Fatalf("DescendantsOf() failed: %v", err)
	}
	if len(desc) != 3 {
		t.Errorf("DescendantsOf(exp) returned %d runs, want 3", len(desc))
	}

	all, err := s.List(ctx, "")
	if err != nil {
		t.Fatalf("List(all) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("List() returned %d runs, want 5", len(all))
	}
}

// fakeTx lets Close semantics be tested without a live database.
type fakeTx struct {
	querier
	commits   int
	rollbacks int
}

func (f *fakeTx) Commit() error   { f.commits++; return nil }
func (f *fakeTx) Rollback() error { f.rollbacks++; return nil }
