package serve

import (
	"sync/atomic"
	"time"

	"github.com/ruta53/alojamientos/internal/extract"
)

// Snapshot is one immutable extraction outcome: the record sequence plus the
// run's status and provenance. It is produced whole and never mutated.
type Snapshot struct {
	Result   *extract.Result `json:"result"`
	Source   string          `json:"source"`
	LoadedAt time.Time       `json:"loaded_at"`
}

// Holder keeps the current snapshot and swaps it atomically on refresh.
// Readers never observe a torn update; they either see the previous run or
// the new one, whole.
type Holder struct {
	current atomic.Pointer[Snapshot]
}

// NewHolder returns a holder with no snapshot loaded yet.
func NewHolder() *Holder {
	return &Holder{}
}

// Current returns the latest snapshot, or nil when no extraction has run.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Replace installs a new snapshot.
func (h *Holder) Replace(result *extract.Result, source string) *Snapshot {
	snap := &Snapshot{
		Result:   result,
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
	h.current.Store(snap)
	return snap
}
