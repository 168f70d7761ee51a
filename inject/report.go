// Package inject mutates the target store: adding missing sentence
// phrases to custom tag definitions, and appending witness rows for
// relationships found in the source tree.
package inject

import (
	"time"

	"github.com/google/uuid"
)

// Diagnostic describes one item that needs attention after a run. The
// identifying fields are filled as far as they are known.
type Diagnostic struct {
	Tag       string `json:"tag,omitempty"`       // tag definition name
	SourceID  string `json:"source_id,omitempty"` // source-tree individual id
	Reference string `json:"reference,omitempty"` // reference number
	EventID   int    `json:"event_id,omitempty"`  // target event row
	Role      string `json:"role,omitempty"`
	Reason    string `json:"reason"`
}

// runInfo is shared by both report kinds.
type runInfo struct {
	RunID      string    `json:"run_id"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Fatal is set when a precondition failed and nothing was touched.
	Fatal error `json:"-"`
	// Remaining counts rows left unexamined after cancellation.
	Remaining int `json:"remaining"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

func newRunInfo(dryRun bool) runInfo {
	return runInfo{
		RunID:     uuid.NewString(),
		DryRun:    dryRun,
		StartedAt: time.Now(),
	}
}

func (r *runInfo) finish() {
	r.FinishedAt = time.Now()
}

func (r *runInfo) diagnose(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// IsFatal reports whether the run aborted before touching any row.
// Callers must distinguish this from partial completion.
func (r *runInfo) IsFatal() bool {
	return r.Fatal != nil
}

// Cancelled reports whether the run stopped early with rows unexamined.
func (r *runInfo) Cancelled() bool {
	return r.Remaining > 0
}

// SentenceReport summarizes one sentence-injection run.
type SentenceReport struct {
	runInfo

	TagsSeen     int `json:"tags_seen"`
	TagsModified int `json:"tags_modified"`
	TagsSkipped  int `json:"tags_skipped"`
	TagsErrored  int `json:"tags_errored"`
	PhrasesAdded int `json:"phrases_added"`
	RolesAdded   int `json:"roles_added"`
}

// Partial reports whether some items changed while others were flagged.
func (r *SentenceReport) Partial() bool {
	return !r.IsFatal() && r.TagsErrored > 0
}

// WitnessReport summarizes one witness-injection run.
type WitnessReport struct {
	runInfo

	CandidatesSeen  int `json:"candidates_seen"`
	WitnessesAdded  int `json:"witnesses_added"`
	Duplicates      int `json:"duplicates"`
	SelfReferential int `json:"self_referential"`
	Ambiguous       int `json:"ambiguous"`
	Unmatched       int `json:"unmatched"`
	Errored         int `json:"errored"`
	RolesAdded      int `json:"roles_added"`
	TagsUpdated     int `json:"tags_updated"`
}

// Partial reports whether some items changed while others were flagged.
func (r *WitnessReport) Partial() bool {
	return !r.IsFatal() && (r.Errored > 0 || r.Ambiguous > 0)
}
