package transaction

import (
	"time"

	"github.com/roach88/runledger/internal/runpath"
)

// RunEntry describes a run to be created. Immutable once queued.
type RunEntry struct {
	Path         runpath.Path
	FullCommand  string
	Commit       string
	CreatedAt    time.Time
	Description  string
	InputCommand string
}

// Move relocates the run at Src to Dest. KillTmux terminates the run's
// session as part of the move; otherwise the session is renamed to
// follow the run.
type Move struct {
	Src      runpath.Path
	Dest     runpath.Path
	KillTmux bool
}

// DescriptionChange edits a run's description. FullCommand and
// OldDescription are carried for verification: the validate phase
// rejects the change when the persisted entry no longer matches what
// the caller read.
type DescriptionChange struct {
	Path           runpath.Path
	FullCommand    string
	OldDescription string
	NewDescription string
}
